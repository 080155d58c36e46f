// Package users implements the admin user endpoints, the listing and
// stats queries, the proximity search and the per-user board-game
// config endpoints.
package users

import (
	"net/http"
	"strconv"

	"boardmates/internal/dto"
	"boardmates/internal/store"

	"github.com/labstack/echo/v4"
)

// Seams for tests.
var (
	getUserByID      = store.GetUserByID
	updateUser       = store.UpdateUser
	deleteUser       = store.DeleteUser
	listUsers        = store.ListUsers
	countUsers       = store.CountUsers
	countUsersByType = store.CountUsersByType
	nearbyUsers      = store.NearbyUsers
	getConfig        = store.GetConfig
	upsertConfig     = store.UpsertConfig
)

// pathUserID parses the :id path parameter. On a non-numeric id it
// writes the 400 itself and reports false.
func pathUserID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid user ID"})
		return 0, false
	}
	return id, true
}
