package auth

import (
	"net/http"
	"strings"

	"boardmates/internal/database"
	"boardmates/internal/dto"
	"boardmates/internal/session"

	"github.com/labstack/echo/v4"
)

// wrongCredentials covers both unknown email and bad password so the
// endpoint cannot be used to enumerate accounts.
const wrongCredentials = "wrong email or password"

// LoginRequest is the login payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// LoginResponse is the session-bound identity.
// swagger:model LoginResponse
type LoginResponse struct {
	Username string `json:"username" example:"alice"`
	ID       int    `json:"id" example:"1"`
}

// LoginHandler verifies credentials and establishes a session.
// @Summary     Log in
// @Description Verifies email/password, sets the sid session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body LoginRequest true "credentials"
// @Success     200 {object} LoginResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /login [post]
func LoginHandler(db database.DB, sessions session.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: wrongCredentials})
		}
		if err := comparePassword(user.PasswordHash, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: wrongCredentials})
		}

		if err := touchLastLogin(c.Request().Context(), db, user.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "login failed"})
		}

		sid, err := sessions.Create(c.Request().Context(), session.Data{
			UserID:   user.ID,
			Username: user.Username,
			Type:     user.Type,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to create session"})
		}
		token, err := session.SignSID(sid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to create session"})
		}
		c.SetCookie(session.NewCookie(token))

		return c.JSON(http.StatusOK, LoginResponse{Username: user.Username, ID: user.ID})
	}
}
