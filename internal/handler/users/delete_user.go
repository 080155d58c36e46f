package users

import (
	"errors"
	"net/http"

	"boardmates/internal/database"
	"boardmates/internal/dto"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// DeleteUserResponse acknowledges a deletion.
// swagger:model DeleteUserResponse
type DeleteUserResponse struct {
	Message string `json:"message" example:"User deleted successfully"`
}

// DeleteUserHandler removes a user. The location and config rows go
// with it through the foreign keys.
// @Summary     Delete a user
// @Tags        users
// @Produce     json
// @Param       id path int true "user id"
// @Success     200 {object} DeleteUserResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /user/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathUserID(c)
		if !ok {
			return nil
		}
		err := deleteUser(c.Request().Context(), db, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "user not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to delete user"})
		}
		return c.JSON(http.StatusOK, DeleteUserResponse{Message: "User deleted successfully"})
	}
}
