package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goblog/internal/transport/http/session"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// RequireLogin guards a route group: without a resolved identity the wrapped
// handler never runs and the caller is sent to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username, ok := session.Identity(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUsernameKey, username)
		c.Next()
	}
}
