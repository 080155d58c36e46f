package users

import (
	"errors"
	"net/http"
	"strings"

	"boardmates/internal/database"
	"boardmates/internal/dto"
	"boardmates/internal/model"
	"boardmates/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// UpdateUserRequest carries the editable fields; omitted fields keep
// their current value.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Username *string `json:"username" example:"alice"`
	Email    *string `json:"email" validate:"omitempty,email" example:"alice@example.com"`
	Active   *bool   `json:"active" example:"true"`
	Type     *string `json:"type" example:"shop"`
}

// UpdateUserResponse acknowledges the update and returns the stored row.
// swagger:model UpdateUserResponse
type UpdateUserResponse struct {
	Message string      `json:"message" example:"User updated successfully"`
	User    *model.User `json:"user"`
}

// UpdateUserHandler patches a user in a single statement.
// @Summary     Update a user
// @Description Applies the provided fields; omitted fields are unchanged
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path int               true "user id"
// @Param       body body UpdateUserRequest true "fields to change"
// @Success     200 {object} UpdateUserResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /user/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathUserID(c)
		if !ok {
			return nil
		}
		var req UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}
		if req.Type != nil && !model.IsValidUserType(*req.Type) {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid user type"})
		}
		if req.Email != nil {
			lowered := strings.ToLower(*req.Email)
			req.Email = &lowered
		}

		user, err := updateUser(c.Request().Context(), db, id, store.UserPatch{
			Username: req.Username,
			Email:    req.Email,
			Active:   req.Active,
			Type:     req.Type,
		})
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "user not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to update user"})
		}
		return c.JSON(http.StatusOK, UpdateUserResponse{Message: "User updated successfully", User: user})
	}
}
