// routes/commission_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/controllers"
	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
	ws "github.com/signforge/signforge_backend/websocket"
)

// RegisterCommissionRoutes wires commission calculation, listing, stats
// and monthly settlements
func RegisterCommissionRoutes(e *echo.Echo, db *mongo.Client, hub *ws.Hub) {
	commissionController := controllers.NewCommissionController(db)
	paymentController := controllers.NewCommissionPaymentController(db, hub)

	commissions := e.Group("/api/commissions")
	commissions.Use(middleware.JWTMiddleware())
	commissions.GET("", commissionController.GetCommissions)
	commissions.GET("/stats", commissionController.GetStats)
	// Money-moving operations stay with admins and team leaders
	commissions.POST("/calculate", commissionController.CalculateCommission,
		middleware.RequireRole(models.RoleAdmin, models.RoleTeamLeader))

	payments := e.Group("/api/commission-payments")
	payments.Use(middleware.JWTMiddleware())
	payments.GET("", paymentController.GetPayments)
	payments.POST("/process", paymentController.ProcessPayment,
		middleware.RequireRole(models.RoleAdmin, models.RoleTeamLeader))
	payments.DELETE("/:id", paymentController.ReversePayment,
		middleware.RequireRole(models.RoleAdmin))
}
