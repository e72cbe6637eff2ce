package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepwise/backend/models"
)

// SessionUserKey is the key used to store the resolved user in gin context
const SessionUserKey = "session_user"

// SignInPath is where unauthenticated requests are pointed to
const SignInPath = "/sign-in"

// SessionGate creates a middleware that resolves the current user from the
// session cookie before any protected handler runs. Requests without a valid
// session are rejected with a sign-in redirect and never reach the handler.
func SessionGate(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			abortToSignIn(c)
			return
		}

		user, err := sessions.ResolveUser(c.Request.Context(), token)
		if err != nil {
			abortToSignIn(c)
			return
		}

		c.Set(SessionUserKey, user)
		c.Next()
	}
}

func abortToSignIn(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:    "Authentication required",
		Code:     http.StatusUnauthorized,
		Redirect: SignInPath,
	})
	c.Abort()
}

// GetSessionUser retrieves the resolved session user from gin context
func GetSessionUser(c *gin.Context) *SessionUser {
	user, exists := c.Get(SessionUserKey)
	if !exists {
		return nil
	}
	return user.(*SessionUser)
}
