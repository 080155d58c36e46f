package users

import (
	"net/http"

	"boardmates/internal/database"
	"boardmates/internal/dto"

	"github.com/labstack/echo/v4"
)

// UserStatsHandler reports account counts grouped by user type, as a
// flat object keyed by type. Every known type is present even when its
// count is zero.
// @Summary     User statistics
// @Tags        users
// @Produce     json
// @Success     200 {object} map[string]int
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /users/stats [get]
func UserStatsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		counts, err := countUsersByType(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to load user stats"})
		}
		return c.JSON(http.StatusOK, counts)
	}
}
