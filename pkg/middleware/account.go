package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/services"
	"avatarforge/pkg/utils"
)

const accountKey = "account"

// AccountMiddleware resolves the caller's account exactly once per request
// (provisioning it on first contact) and stores it in the gin context. No
// ambient account state exists anywhere else.
func AccountMiddleware(userService services.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		clerkUserID := c.GetString("clerk_user_id")
		email := c.GetString("email")
		if clerkUserID == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
			c.Abort()
			return
		}

		account, err := userService.EnsureAccount(c.Request.Context(), clerkUserID, email)
		if err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

// GateMiddleware blocks callers who are not yet approved for the product.
func GateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		account := AccountFrom(c)
		if account == nil {
			utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
			c.Abort()
			return
		}
		if !services.IsAuthorized(account) {
			utils.RespondError(c, http.StatusForbidden, "Account pending approval")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware restricts a route group to administrators. Services behind
// it re-check the flag themselves.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		account := AccountFrom(c)
		if account == nil || !account.IsAdmin {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AccountFrom returns the account resolved for this request, or nil.
func AccountFrom(c *gin.Context) *db_models.User {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	account, ok := v.(*db_models.User)
	if !ok {
		return nil
	}
	return account
}
