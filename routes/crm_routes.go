// routes/crm_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/controllers"
	"github.com/signforge/signforge_backend/middleware"
)

// RegisterCRMRoutes wires clients, leads, campaigns and proposals
func RegisterCRMRoutes(e *echo.Echo, db *mongo.Client) {
	clientController := controllers.NewClientController(db)
	leadController := controllers.NewLeadController(db)
	campaignController := controllers.NewCampaignController(db)
	proposalController := controllers.NewProposalController(db)

	clients := e.Group("/api/clients")
	clients.Use(middleware.JWTMiddleware())
	clients.GET("", clientController.GetClients)
	clients.POST("", clientController.CreateClient)
	clients.PUT("/:id", clientController.UpdateClient)
	clients.DELETE("/:id", clientController.DeleteClient)

	leads := e.Group("/api/leads")
	leads.Use(middleware.JWTMiddleware())
	leads.GET("", leadController.GetLeads)
	leads.POST("", leadController.CreateLead)
	leads.PUT("/:id", leadController.UpdateLead)
	leads.DELETE("/:id", leadController.DeleteLead)
	leads.POST("/:id/convert", leadController.ConvertLead)

	campaigns := e.Group("/api/campaigns")
	campaigns.Use(middleware.JWTMiddleware())
	campaigns.GET("", campaignController.GetCampaigns)
	campaigns.POST("", campaignController.CreateCampaign)
	campaigns.PUT("/:id", campaignController.UpdateCampaign)
	campaigns.DELETE("/:id", campaignController.DeleteCampaign)

	proposals := e.Group("/api/proposals")
	proposals.Use(middleware.JWTMiddleware())
	proposals.GET("", proposalController.GetProposals)
	proposals.POST("", proposalController.CreateProposal)
	proposals.PUT("/:id", proposalController.UpdateProposal)
	proposals.DELETE("/:id", proposalController.DeleteProposal)
}
