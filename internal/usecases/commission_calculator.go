package usecases

import (
	"github.com/shopspring/decimal"
	"sellhub.backend/internal/config"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
)

var oneHundred = decimal.NewFromInt(100)

// LineInput is everything the calculator needs for one order line.
// For dropshipping lines the rate and base price come from the SOURCE
// product, never from the reseller's copy, because those drift
// independently.
type LineInput struct {
	ItemType          entities.ItemType
	UnitPrice         decimal.Decimal
	Quantity          int
	CommissionPercent decimal.Decimal
	SourceBasePrice   decimal.Decimal
}

// LineSplit is the commission breakdown for one order line. Values are
// exact; rounding to 2 decimal places happens only where they are
// persisted or displayed.
type LineSplit struct {
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	SellerRevenue    decimal.Decimal
}

// CommissionCalculator computes per-line revenue splits. Pure computation:
// no state, safe to call repeatedly with identical inputs.
type CommissionCalculator struct {
	cfg config.SettlementConfig
}

// NewCommissionCalculator creates a new commission calculator
func NewCommissionCalculator(cfg config.SettlementConfig) *CommissionCalculator {
	return &CommissionCalculator{cfg: cfg}
}

// CalculateLine computes the commission and seller revenue for one line.
//
// Own-inventory line: the seller pays the platform a commission.
//
//	commission = lineTotal * rate/100
//	revenue    = lineTotal - commission
//
// Dropshipping line: the seller resells platform-sourced inventory at a
// markup and earns a commission on the source cost base.
//
//	costBase   = sourceBasePrice * quantity
//	markup     = lineTotal - costBase
//	commission = costBase * rate/100
//	revenue    = markup + commission
func (c *CommissionCalculator) CalculateLine(in LineInput) (LineSplit, error) {
	if in.Quantity <= 0 {
		return LineSplit{}, domainerrors.BadRequest("quantity must be positive")
	}
	if in.UnitPrice.IsNegative() {
		return LineSplit{}, domainerrors.BadRequest("unit price must not be negative")
	}

	rate := in.CommissionPercent
	if rate.IsZero() {
		rate = c.cfg.DefaultCommissionPercent
	}
	if rate.IsNegative() || rate.GreaterThan(oneHundred) {
		return LineSplit{}, domainerrors.BadRequest("commission rate must be between 0 and 100")
	}

	qty := decimal.NewFromInt(int64(in.Quantity))
	lineTotal := in.UnitPrice.Mul(qty)

	switch in.ItemType {
	case entities.ItemTypeOwn:
		commission := lineTotal.Mul(rate).Div(oneHundred)
		return LineSplit{
			CommissionRate:   rate,
			CommissionAmount: commission,
			SellerRevenue:    lineTotal.Sub(commission),
		}, nil

	case entities.ItemTypeDropship:
		if !in.SourceBasePrice.IsPositive() {
			return LineSplit{}, domainerrors.BadRequest("source base price is required for dropshipping lines")
		}
		costBase := in.SourceBasePrice.Mul(qty)
		markup := lineTotal.Sub(costBase)
		commission := costBase.Mul(rate).Div(oneHundred)
		return LineSplit{
			CommissionRate:   rate,
			CommissionAmount: commission,
			SellerRevenue:    markup.Add(commission),
		}, nil

	default:
		return LineSplit{}, domainerrors.BadRequest("unknown item type")
	}
}
