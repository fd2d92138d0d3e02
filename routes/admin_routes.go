// routes/admin_routes.go
package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/controllers"
	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
	ws "github.com/signforge/signforge_backend/websocket"
)

// RegisterAdminRoutes wires user management, integration settings, the
// dashboard, notifications, the identity webhook and the websocket
// upgrade
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client, hub *ws.Hub) {
	userController := controllers.NewUserController(db)
	settingsController := controllers.NewSettingsController(db)
	dashboardController := controllers.NewDashboardController(db)
	webhookController := controllers.NewWebhookController(db)

	users := e.Group("/api/users")
	users.Use(middleware.JWTMiddleware())
	users.GET("", userController.GetUsers)
	users.POST("", userController.CreateUser, middleware.RequireRole(models.RoleAdmin))
	users.PUT("/:id", userController.UpdateUser, middleware.RequireRole(models.RoleAdmin))
	users.DELETE("/:id", userController.DeleteUser, middleware.RequireRole(models.RoleAdmin))

	notifications := e.Group("/api/notifications")
	notifications.Use(middleware.JWTMiddleware())
	notifications.GET("", userController.GetNotifications)
	notifications.PUT("/:id/read", userController.MarkNotificationRead)

	settings := e.Group("/api/settings")
	settings.Use(middleware.JWTMiddleware())
	settings.GET("", settingsController.GetSettings)
	settings.PUT("", settingsController.UpdateSettings, middleware.RequireRole(models.RoleAdmin))

	dashboard := e.Group("/api/dashboard")
	dashboard.Use(middleware.JWTMiddleware())
	dashboard.GET("/summary", dashboardController.GetSummary)

	// Webhook authenticates with a shared secret, not a JWT
	e.POST("/api/webhooks/identity", webhookController.HandleIdentityEvent)

	// Websocket upgrades carry the JWT; clients may also authenticate
	// in-band afterwards
	e.GET("/api/ws", func(c echo.Context) error {
		userID := primitive.NilObjectID
		if claims := middleware.GetUserFromToken(c); claims != nil {
			if id, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
				userID = id
			}
		}
		return ws.HandleWebSocket(c, hub, userID)
	}, middleware.JWTMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
