// routes/auth_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/controllers"
	"github.com/signforge/signforge_backend/middleware"
)

// RegisterAuthRoutes wires login, token refresh, logout and profile
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client) {
	authController := controllers.NewAuthController(db)

	auth := e.Group("/api/auth")
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.Refresh)

	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/logout", authController.Logout)
	protected.GET("/me", authController.Me)
}
