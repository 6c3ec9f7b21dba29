package middleware

import "github.com/gin-gonic/gin"

const actorIDKey = contextKey("actorID")

// actorHeader identifies the acting user/system for audit fields.
// Authentication is handled upstream of this service; the header carries
// the resolved principal through.
const actorHeader = "X-Actor-ID"

// defaultActor is used when no actor header is supplied.
const defaultActor = "system"

// ActorMiddleware resolves the acting principal for audit trails and
// stores it in the Gin context.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorIDKey), actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting principal from the Gin context.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return defaultActor
	}
	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return defaultActor
	}
	return actor
}
