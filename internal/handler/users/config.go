package users

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"boardmates/internal/database"
	"boardmates/internal/dto"
	"boardmates/internal/model"

	"github.com/labstack/echo/v4"
)

// maxCityLen matches the city column width.
const maxCityLen = 120

// ConfigRequest is the full board-game config document. A PUT replaces
// the stored document, so omitted lists come back empty.
// swagger:model ConfigRequest
type ConfigRequest struct {
	GamesOwned          []string `json:"games_owned" example:"catan"`
	GamesLiked          []string `json:"games_liked" example:"azul"`
	GameTypesInterested []string `json:"game_types_interested" example:"coop"`
	HasSpace            bool     `json:"has_space" example:"true"`
	City                *string  `json:"city" example:"Taipei"`
	Subscription        string   `json:"subscription" example:"free"`
}

// normalize folds the request into storable shape: nil lists become
// empty, unknown subscriptions fall back to free, and the city is
// trimmed and bounded to the column width.
func (r *ConfigRequest) normalize() {
	if r.GamesOwned == nil {
		r.GamesOwned = []string{}
	}
	if r.GamesLiked == nil {
		r.GamesLiked = []string{}
	}
	if r.GameTypesInterested == nil {
		r.GameTypesInterested = []string{}
	}
	if !model.IsValidSubscription(r.Subscription) {
		r.Subscription = model.SubscriptionFree
	}
	if r.City != nil {
		city := strings.TrimSpace(*r.City)
		if utf8.RuneCountInString(city) > maxCityLen {
			city = string([]rune(city)[:maxCityLen])
		}
		if city == "" {
			r.City = nil
		} else {
			r.City = &city
		}
	}
}

// GetConfigHandler returns the user's board-game config, or the default
// document when none has been saved yet.
// @Summary     Get board-game config
// @Tags        config
// @Produce     json
// @Param       id path int true "user id"
// @Success     200 {object} model.BoardgameConfig
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /users/{id}/config [get]
func GetConfigHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathUserID(c)
		if !ok {
			return nil
		}
		cfg, err := getConfig(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to load config"})
		}
		return c.JSON(http.StatusOK, cfg)
	}
}

// UpsertConfigHandler stores the full config document for the user.
// @Summary     Save board-game config
// @Description Replaces the stored document, creating it on first save
// @Tags        config
// @Accept      json
// @Produce     json
// @Param       id   path int           true "user id"
// @Param       body body ConfigRequest true "config document"
// @Success     200 {object} model.BoardgameConfig
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /users/{id}/config [put]
func UpsertConfigHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathUserID(c)
		if !ok {
			return nil
		}
		var req ConfigRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		req.normalize()

		stored, err := upsertConfig(c.Request().Context(), db, &model.BoardgameConfig{
			UserID:              id,
			GamesOwned:          req.GamesOwned,
			GamesLiked:          req.GamesLiked,
			GameTypesInterested: req.GameTypesInterested,
			HasSpace:            req.HasSpace,
			City:                req.City,
			Subscription:        req.Subscription,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to save config"})
		}
		return c.JSON(http.StatusOK, stored)
	}
}
