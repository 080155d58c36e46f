package auth

import (
	"errors"
	"net/http"
	"strings"

	"boardmates/internal/database"
	"boardmates/internal/dto"
	"boardmates/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// RegisterRequest is the registration payload.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
	Type     string `json:"type" example:"user"`
}

// RegisterResponse is the created account summary.
// swagger:model RegisterResponse
type RegisterResponse struct {
	Username string `json:"username" example:"alice"`
	ID       int    `json:"id" example:"1"`
	Type     string `json:"type" example:"user"`
	Active   bool   `json:"active" example:"true"`
}

// RegisterHandler creates a new account.
// @Summary     Register a new user
// @Description Creates an account; email must be unique, type defaults to "user"
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body RegisterRequest true "registration payload"
// @Success     201 {object} RegisterResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		if req.Type == "" {
			req.Type = model.TypeUser
		}
		if !model.IsValidUserType(req.Type) {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid user type"})
		}
		req.Email = strings.ToLower(req.Email)

		// Duplicate check first so the caller gets a specific message.
		_, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if err == nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "email already exists"})
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "registration failed"})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to hash password"})
		}

		user := &model.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Type:         req.Type,
		}
		created, err := createUser(c.Request().Context(), db, user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "registration failed"})
		}

		return c.JSON(http.StatusCreated, RegisterResponse{
			Username: created.Username,
			ID:       created.ID,
			Type:     created.Type,
			Active:   created.Active,
		})
	}
}
