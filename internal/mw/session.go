package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lordiod/NMUstudenthousing/internal/auth"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "housing_session"

const sessionKey = "session"

// RequireSession verifies the session cookie and stores the decoded
// session on the request context. Requests without a valid session are
// redirected to the login page.
func RequireSession(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		session, err := sessions.Parse(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireAdmin redirects non-admin callers home. It must run after
// RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok || !session.IsAdmin {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession.
func CurrentSession(c *gin.Context) (auth.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return auth.Session{}, false
	}
	session, ok := value.(auth.Session)
	return session, ok
}
