package users

import (
	"net/http"
	"strconv"
	"strings"

	"boardmates/internal/database"
	"boardmates/internal/dto"
	"boardmates/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination describes one page of a listing.
// swagger:model Pagination
type Pagination struct {
	CurrentPage     int  `json:"currentPage" example:"1"`
	TotalPages      int  `json:"totalPages" example:"5"`
	TotalRecords    int  `json:"totalRecords" example:"42"`
	Limit           int  `json:"limit" example:"10"`
	HasNextPage     bool `json:"hasNextPage" example:"true"`
	HasPreviousPage bool `json:"hasPreviousPage" example:"false"`
}

// ListUsersResponse is one page of users plus its pagination envelope.
// swagger:model ListUsersResponse
type ListUsersResponse struct {
	Users      []store.ListedUser `json:"users"`
	Pagination Pagination         `json:"pagination"`
}

// parsePage clamps page to >= 1; anything unparsable falls back to the
// default.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return defaultPage
	}
	return page
}

// parseLimit clamps limit to [1, maxLimit].
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// parseFilter reads the username, active and type query parameters.
// The type parameter repeats and each value may itself be a
// comma-separated list.
func parseFilter(c echo.Context) store.UserFilter {
	f := store.UserFilter{Username: c.QueryParam("username")}

	if raw := c.QueryParam("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			f.Active = &active
		}
	}
	for _, raw := range c.QueryParams()["type"] {
		for _, token := range strings.Split(raw, ",") {
			if token = strings.TrimSpace(token); token != "" {
				f.Types = append(f.Types, token)
			}
		}
	}
	return f
}

// ListUsersHandler returns a filtered, paginated user listing.
// @Summary     List users
// @Description Paginated listing with username, active and type filters
// @Tags        users
// @Produce     json
// @Param       username query string false "username substring, case-insensitive"
// @Param       active   query bool   false "active flag"
// @Param       type     query string false "user type, repeatable or comma-separated"
// @Param       page     query int    false "page number, starts at 1"
// @Param       limit    query int    false "page size, max 100"
// @Success     200 {object} ListUsersResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := parseFilter(c)
		page := parsePage(c.QueryParam("page"))
		limit := parseLimit(c.QueryParam("limit"))
		offset := (page - 1) * limit

		total, err := countUsers(c.Request().Context(), db, filter)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to list users"})
		}
		list, err := listUsers(c.Request().Context(), db, filter, limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to list users"})
		}

		totalPages := (total + limit - 1) / limit
		return c.JSON(http.StatusOK, ListUsersResponse{
			Users: list,
			Pagination: Pagination{
				CurrentPage:     page,
				TotalPages:      totalPages,
				TotalRecords:    total,
				Limit:           limit,
				HasNextPage:     page < totalPages,
				HasPreviousPage: page > 1,
			},
		})
	}
}
