package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Makepad-fr/tada-lists/internal/session"
)

const (
	cookieName   = "tada_session"
	sessionIDKey = "session_id"
)

// sessionCookie resolves the session id from the signed cookie, starting
// a new session when it is missing or invalid, and refreshes the cookie.
func (s *Server) sessionCookie(c *gin.Context) {
	id := ""
	if v, err := c.Cookie(cookieName); err == nil {
		id, _ = s.secret.Verify(v)
	}
	if id == "" {
		id = s.sessions.NewID()
	}
	c.Set(sessionIDKey, id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, s.secret.Sign(id), int(s.sessions.TTL().Seconds()), "/", "", s.cookieSecure, true)
	c.Next()
}

// reply writes the response once the session has been saved.
type reply func(c *gin.Context)

// handle runs fn against the request's session under the session lock
// and writes its reply after the session is stored.
func (s *Server) handle(fn func(c *gin.Context, d *session.Data) reply) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetString(sessionIDKey)
		var r reply
		err := s.sessions.Do(c.Request.Context(), id, func(d *session.Data) error {
			r = fn(c, d)
			return nil
		})
		if err != nil {
			s.logger.Error("session", "err", err)
			c.String(http.StatusInternalServerError, "Something went wrong.")
			return
		}
		r(c)
	}
}
