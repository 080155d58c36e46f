package router

import (
	"github.com/labstack/echo/v4"

	"boardmates/internal/cache"
	"boardmates/internal/database"
	"boardmates/internal/handler"
	"boardmates/internal/handler/auth"
	"boardmates/internal/handler/location"
	"boardmates/internal/handler/users"
	"boardmates/internal/middleware"
	"boardmates/internal/session"
	"boardmates/internal/worker"
)

// Setup registers all routes and their auth gates.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool) {
	sessions := session.NewRedisStore(rdb)

	requireAuth := middleware.RequireAuth(sessions)
	requireAdmin := middleware.RequireAdmin(sessions)
	requireAdminOrSelf := middleware.RequireAdminOrSelf(sessions)

	e.GET("/ping", handler.PingHandler(db, rdb), requireAuth)

	e.POST("/register", auth.RegisterHandler(db))
	e.POST("/login", auth.LoginHandler(db, sessions))
	e.GET("/logout", auth.LogoutHandler(db, sessions, wp))

	// Admin-only user management. /users/nearby stays open to any
	// logged-in user, so it is registered before the grouped routes
	// claim the prefix.
	e.GET("/users/nearby", users.NearbyUsersHandler(db), requireAuth)
	e.GET("/users", users.ListUsersHandler(db), requireAdmin)
	e.GET("/users/stats", users.UserStatsHandler(db), requireAdmin)
	e.GET("/user/:id", users.GetUserHandler(db), requireAdmin)
	e.PUT("/user/:id", users.UpdateUserHandler(db), requireAdmin)
	e.DELETE("/user/:id", users.DeleteUserHandler(db), requireAdmin)

	// Board-game config, owner or admin.
	e.GET("/users/:id/config", users.GetConfigHandler(db), requireAdminOrSelf)
	e.PUT("/users/:id/config", users.UpsertConfigHandler(db), requireAdminOrSelf)

	e.GET("/location/:id", location.GetLocationHandler(db), requireAuth)
	e.POST("/location", location.CreateLocationHandler(db), requireAuth)
	e.PUT("/location/:id", location.UpdateLocationHandler(db), requireAdminOrSelf)
	e.DELETE("/location/:id", location.DeleteLocationHandler(db), requireAdminOrSelf)
}
