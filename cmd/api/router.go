package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	rolemodel "library-catalog/internal/domains/role/model"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/container"
)

// SetupRouter builds the gin engine: global middleware first, then the
// versioned API groups. Reads on the catalog are public; writes require
// an authenticated user holding the matching permission.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders(c.Config.Security))
	router.Use(middleware.CORS(c.Config.Security.AllowedOrigins))
	router.Use(middleware.CSRF(middleware.CSRFConfig{AllowedOrigins: c.Config.Security.AllowedOrigins}))

	router.GET("/health", healthHandler(c))

	auth := middleware.AuthMiddleware(c.JWT)
	canCreate := middleware.RequirePermission(c.RoleService, string(rolemodel.PermissionCreate))
	canEdit := middleware.RequirePermission(c.RoleService, string(rolemodel.PermissionEdit))
	canDelete := middleware.RequirePermission(c.RoleService, string(rolemodel.PermissionDelete))

	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", c.UserHandler.Register)
			authRoutes.POST("/login", c.UserHandler.Login)
			authRoutes.POST("/refresh", c.UserHandler.Refresh)
		}

		books := v1.Group("/books")
		{
			books.GET("", c.BookHandler.ListBooks)
			books.GET("/:id", c.BookHandler.GetBook)

			books.POST("/create", auth, canCreate, c.BookHandler.CreateBook)
			books.PUT("/:id/update", auth, canEdit, c.BookHandler.UpdateBook)
			books.PATCH("/:id/update", auth, canEdit, c.BookHandler.UpdateBook)
			books.DELETE("/:id/delete", auth, canDelete, c.BookHandler.DeleteBook)
		}

		authors := v1.Group("/authors")
		{
			authors.GET("", c.AuthorHandler.ListAuthors)
			authors.GET("/:id", c.AuthorHandler.GetAuthor)

			authors.POST("/create", auth, canCreate, c.AuthorHandler.CreateAuthor)
			authors.PUT("/:id/update", auth, canEdit, c.AuthorHandler.UpdateAuthor)
			authors.PATCH("/:id/update", auth, canEdit, c.AuthorHandler.UpdateAuthor)
			authors.DELETE("/:id/delete", auth, canDelete, c.AuthorHandler.DeleteAuthor)
		}

		users := v1.Group("/users", auth)
		{
			users.GET("/me", c.UserHandler.GetProfile)
			users.PATCH("/me", c.UserHandler.UpdateProfile)
			users.POST("/me/change-password", c.UserHandler.ChangePassword)
			users.POST("/me/photo", c.UserHandler.UploadPhoto)
		}

		// Role administration is limited to holders of can_delete,
		// the grant only the admins role carries.
		admin := v1.Group("/admin", auth, canDelete)
		{
			admin.GET("/users", c.UserHandler.ListUsers)
			admin.GET("/roles", c.RoleHandler.ListRoles)
			admin.GET("/users/:id/roles", c.RoleHandler.GetUserRoles)
			admin.POST("/users/:id/roles", c.RoleHandler.AssignRole)
			admin.DELETE("/users/:id/roles/:role", c.RoleHandler.RevokeRole)
		}
	}

	return router
}

// healthHandler reports liveness of the service and its dependencies
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "unavailable"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		response.Success(ctx, status, gin.H{
			"service":  c.Config.App.Name,
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
