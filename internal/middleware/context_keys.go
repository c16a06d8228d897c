package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorHeader carries the acting user's ID from the upstream gateway, which
// owns authentication. The engine only needs the identity for audit fields.
const actorHeader = "X-Actor-ID"

// ActorMiddleware copies the acting user's ID from the request header into
// the Gin context. Requests without one are attributed to "system".
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			actorID = "system"
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := actorVal.(string)
	if !ok {
		return "", false
	}
	return actorID, true
}
