// Package middleware holds the echo middleware of the booking service:
// session cookies, request logging, rate limiting and response caching.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the opaque session cookie.  It only keys
// per-browser state such as toasts; it is not authentication.
const SessionCookie = "sid"

const sessionKey = "session_id"

// Session makes sure every request carries a session id, issuing a new
// cookie when the browser has none.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				if _, perr := uuid.Parse(ck.Value); perr == nil {
					sid = ck.Value
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(30 * 24 * time.Hour),
				})
			}
			c.Set(sessionKey, sid)
			return next(c)
		}
	}
}

// SessionID returns the session id set by Session, or "anon" outside it.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(sessionKey).(string); ok && v != "" {
		return v
	}
	return "anon"
}
