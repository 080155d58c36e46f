package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"boardmates/internal/session"

	"github.com/labstack/echo/v4"
)

// ContextSessionKey is where the gates stash *session.Data for handlers.
const ContextSessionKey = "session"

// SessionData pulls the authenticated user out of the request context.
// Only valid behind one of the Require* gates.
func SessionData(c echo.Context) *session.Data {
	data, _ := c.Get(ContextSessionKey).(*session.Data)
	return data
}

func lookupSession(c echo.Context, store session.Store) (*session.Data, error) {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	sid, err := session.VerifySID(cookie.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	data, err := store.Get(c.Request().Context(), sid)
	if errors.Is(err, session.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
	}
	return data, nil
}

// RequireAuth rejects requests without a live session.
func RequireAuth(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, err := lookupSession(c, store)
			if err != nil {
				return err
			}
			c.Set(ContextSessionKey, data)
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin sessions. 401 without a session,
// 403 with one.
func RequireAdmin(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, err := lookupSession(c, store)
			if err != nil {
				return err
			}
			if data.Type != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			c.Set(ContextSessionKey, data)
			return next(c)
		}
	}
}

// RequireAdminOrSelf lets admins through always and everyone else only
// when the :id path param is their own user id.
func RequireAdminOrSelf(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, err := lookupSession(c, store)
			if err != nil {
				return err
			}
			targetID, err := strconv.Atoi(c.Param("id"))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
			}
			if data.Type != "admin" && data.UserID != targetID {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			c.Set(ContextSessionKey, data)
			return next(c)
		}
	}
}
