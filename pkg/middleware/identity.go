package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"avatarforge/pkg/identity"
	"avatarforge/pkg/utils"
)

// IdentityMiddleware enforces bearer-token auth and exposes the verified
// caller identity to downstream handlers.
func IdentityMiddleware(verifier *identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		id, err := verifier.Verify(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("clerk_user_id", id.ExternalID)
		c.Set("email", id.Email)
		c.Next()
	}
}
