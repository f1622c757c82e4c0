package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "salesdesk/internal/core/context"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorName = "X-Actor-Name"
)

// Actor extracts the acting user from request headers and adds it to the
// request context. The actor is informational only: it flows into audit
// fields and change history, it is not an authentication mechanism.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(HeaderActorID)
		if actorID == "" {
			c.Next()
			return
		}

		actor := &appctx.ActorContext{
			ActorID: actorID,
			Name:    c.GetHeader(HeaderActorName),
		}

		ctx := appctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Set("actor_id", actorID)

		c.Next()
	}
}
