package auth

import (
	"context"
	"net/http"

	"boardmates/internal/database"
	"boardmates/internal/dto"
	"boardmates/internal/session"
	"boardmates/internal/worker"

	"github.com/labstack/echo/v4"
)

// LogoutHandler destroys the session and sends the client back to the
// login page. The last_login touch is best-effort and runs off the
// request goroutine.
// @Summary     Log out
// @Description Destroys the session, expires the sid cookie, redirects to /login
// @Tags        auth
// @Success     302
// @Failure     500 {object} dto.HTTPError
// @Router      /logout [get]
func LogoutHandler(db database.DB, sessions session.Store, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		sid, err := session.VerifySID(cookie.Value)
		if err != nil {
			c.SetCookie(session.ExpiredCookie())
			return c.Redirect(http.StatusFound, "/login")
		}

		if data, err := sessions.Get(c.Request().Context(), sid); err == nil {
			userID := data.UserID
			wp.Submit(func() {
				// The request is gone by the time this runs.
				_ = touchLastLogin(context.Background(), db, userID)
			})
		}

		if err := sessions.Delete(c.Request().Context(), sid); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to destroy session"})
		}
		c.SetCookie(session.ExpiredCookie())
		return c.Redirect(http.StatusFound, "/login")
	}
}
