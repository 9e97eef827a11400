package middleware

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// UserContextKey is where the authenticated user id is stored on the echo
// context.
const UserContextKey = "user_id"

// SessionName is the cookie session carrying the authenticated user id.
// The session itself is written by the out-of-scope account component;
// this middleware only reads it.
const SessionName = "linguachat_session"

// CurrentUser resolves the authenticated user id from the session and
// stores it on the context. Requests without a valid session are rejected.
func CurrentUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Get(SessionName, c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			userID, ok := sess.Values[UserContextKey].(string)
			if !ok || userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			c.Set(UserContextKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id set by CurrentUser, or "".
func UserID(c echo.Context) string {
	userID, _ := c.Get(UserContextKey).(string)
	return userID
}
