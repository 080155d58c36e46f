package users

import (
	"net/http"
	"strconv"

	"boardmates/internal/database"
	"boardmates/internal/dto"

	"github.com/labstack/echo/v4"
)

const missingNearbyParams = "missing required parameters: latitude, longitude, or radius"

// NearbyUsersHandler returns active users with a stored location inside
// the given radius, nearest first, as a bare array of rows.
// @Summary     Find nearby users
// @Description Active users within radius meters of (latitude, longitude)
// @Tags        users
// @Produce     json
// @Param       latitude  query number true  "reference latitude"
// @Param       longitude query number true  "reference longitude"
// @Param       radius    query number true  "search radius in meters"
// @Param       username  query string false "username substring filter"
// @Success     200 {array} store.NearbyUser
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /users/nearby [get]
func NearbyUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		lat, latErr := strconv.ParseFloat(c.QueryParam("latitude"), 64)
		lng, lngErr := strconv.ParseFloat(c.QueryParam("longitude"), 64)
		radius, radErr := strconv.ParseFloat(c.QueryParam("radius"), 64)
		if latErr != nil || lngErr != nil || radErr != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: missingNearbyParams})
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 || radius <= 0 {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: missingNearbyParams})
		}

		found, err := nearbyUsers(c.Request().Context(), db, lat, lng, radius, c.QueryParam("username"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to search nearby users"})
		}
		return c.JSON(http.StatusOK, found)
	}
}
