// routes/schedule_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/controllers"
	"github.com/signforge/signforge_backend/middleware"
	ws "github.com/signforge/signforge_backend/websocket"
)

// RegisterScheduleRoutes wires production and installation schedules
func RegisterScheduleRoutes(e *echo.Echo, db *mongo.Client, hub *ws.Hub) {
	productionController := controllers.NewProductionController(db, hub)
	installationController := controllers.NewInstallationController(db, hub)

	production := e.Group("/api/production-schedules")
	production.Use(middleware.JWTMiddleware())
	production.GET("", productionController.GetSchedules)
	production.POST("", productionController.CreateSchedule)
	production.PUT("/:id", productionController.UpdateSchedule)
	production.DELETE("/:id", productionController.DeleteSchedule)

	installation := e.Group("/api/installation-schedules")
	installation.Use(middleware.JWTMiddleware())
	installation.GET("", installationController.GetSchedules)
	installation.POST("", installationController.CreateSchedule)
	installation.PUT("/:id", installationController.UpdateSchedule)
	installation.DELETE("/:id", installationController.DeleteSchedule)
	installation.GET("/:id/job-card", installationController.GetJobCard)
}
