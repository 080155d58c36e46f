// Package location implements the stored-position endpoints backing the
// proximity search.
package location

import (
	"errors"
	"net/http"
	"strconv"

	"boardmates/internal/database"
	"boardmates/internal/dto"
	"boardmates/internal/middleware"
	"boardmates/internal/model"
	"boardmates/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// Seams for tests.
var (
	getLocation    = store.GetLocation
	upsertLocation = store.UpsertLocation
	deleteLocation = store.DeleteLocation
)

// Coordinates is a WGS84 position, also the read-path row shape.
// swagger:model Coordinates
type Coordinates struct {
	Lat float64 `json:"lat" example:"25.03"`
	Lng float64 `json:"lng" example:"121.56"`
}

// LocationRequest is a position report. UserID is optional on POST and
// defaults to the session user; setting someone else's requires admin.
// swagger:model LocationRequest
type LocationRequest struct {
	UserID      *int         `json:"userId" example:"7"`
	Coordinates *Coordinates `json:"coordinates"`
}

func bindLocation(c echo.Context) (*LocationRequest, bool) {
	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		return nil, false
	}
	if req.Coordinates == nil {
		_ = c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "missing coordinates"})
		return nil, false
	}
	if req.Coordinates.Lat < -90 || req.Coordinates.Lat > 90 ||
		req.Coordinates.Lng < -180 || req.Coordinates.Lng > 180 {
		_ = c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid coordinates"})
		return nil, false
	}
	return &req, true
}

// GetLocationHandler returns the user's stored position as a list, so a
// user with no position yields an empty list rather than a 404.
// @Summary     Get a stored location
// @Tags        location
// @Produce     json
// @Param       id path int true "user id"
// @Success     200 {array} Coordinates
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /location/{id} [get]
func GetLocationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid user ID"})
		}
		loc, err := getLocation(c.Request().Context(), db, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusOK, []Coordinates{})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to load location"})
		}
		return c.JSON(http.StatusOK, []Coordinates{{Lat: loc.Lat, Lng: loc.Lng}})
	}
}

// CreateLocationHandler stores the caller's position. An admin may
// store a position for another user via userId.
// @Summary     Report a location
// @Tags        location
// @Accept      json
// @Produce     json
// @Param       body body LocationRequest true "position"
// @Success     201 {object} model.Location
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /location [post]
func CreateLocationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, ok := bindLocation(c)
		if !ok {
			return nil
		}
		sess := middleware.SessionData(c)
		userID := sess.UserID
		if req.UserID != nil && *req.UserID != sess.UserID {
			if sess.Type != "admin" {
				return c.JSON(http.StatusForbidden, dto.HTTPError{Message: "Access denied"})
			}
			userID = *req.UserID
		}

		if err := upsertLocation(c.Request().Context(), db, userID, req.Coordinates.Lng, req.Coordinates.Lat); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to save location"})
		}
		return c.JSON(http.StatusCreated, model.Location{UserID: userID, Lng: req.Coordinates.Lng, Lat: req.Coordinates.Lat})
	}
}

// UpdateLocationHandler replaces the stored position for the :id user.
// @Summary     Update a stored location
// @Tags        location
// @Accept      json
// @Produce     json
// @Param       id   path int             true "user id"
// @Param       body body LocationRequest true "position"
// @Success     200 {object} model.Location
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /location/{id} [put]
func UpdateLocationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid user ID"})
		}
		req, ok := bindLocation(c)
		if !ok {
			return nil
		}
		if err := upsertLocation(c.Request().Context(), db, id, req.Coordinates.Lng, req.Coordinates.Lat); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to save location"})
		}
		return c.JSON(http.StatusOK, model.Location{UserID: id, Lng: req.Coordinates.Lng, Lat: req.Coordinates.Lat})
	}
}

// DeleteLocationHandler removes the stored position for the :id user.
// @Summary     Delete a stored location
// @Tags        location
// @Produce     json
// @Param       id path int true "user id"
// @Success     200 {object} map[string]string
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /location/{id} [delete]
func DeleteLocationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid user ID"})
		}
		err = deleteLocation(c.Request().Context(), db, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "location not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to delete location"})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Location deleted successfully"})
	}
}
