package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ActorHeader = "X-Actor-ID"
	ActorKey    = "actor_id"
)

// ActorMiddleware requires the acting admin's identity on back-office
// routes. This is identity plumbing for the audit trail, not
// authentication.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(ActorHeader)
		if actor == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "ERR_ACTOR_REQUIRED",
				"message": "X-Actor-ID header is required",
			})
			return
		}
		c.Set(ActorKey, actor)
		c.Next()
	}
}
