// routes/project_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/controllers"
	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
	ws "github.com/signforge/signforge_backend/websocket"
)

// RegisterProjectRoutes wires projects, tasks, specifications, designs
// and issues
func RegisterProjectRoutes(e *echo.Echo, db *mongo.Client, hub *ws.Hub) {
	projectController := controllers.NewProjectController(db)
	taskController := controllers.NewTaskController(db)
	specController := controllers.NewSpecificationController(db)
	designController := controllers.NewDesignController(db, hub)
	issueController := controllers.NewIssueController(db)

	projects := e.Group("/api/projects")
	projects.Use(middleware.JWTMiddleware())
	projects.GET("", projectController.GetProjects)
	projects.GET("/:id", projectController.GetProject)
	projects.POST("", projectController.CreateProject)
	projects.PUT("/:id", projectController.UpdateProject)
	projects.DELETE("/:id", projectController.DeleteProject)

	tasks := e.Group("/api/tasks")
	tasks.Use(middleware.JWTMiddleware())
	tasks.GET("", taskController.GetTasks)
	tasks.POST("", taskController.CreateTask)
	tasks.PUT("/:id", taskController.UpdateTask)
	tasks.DELETE("/:id", taskController.DeleteTask)

	specs := e.Group("/api/specifications")
	specs.Use(middleware.JWTMiddleware())
	specs.GET("", specController.GetSpecifications)
	specs.POST("", specController.CreateSpecification)
	specs.PUT("/:id", specController.UpdateSpecification)
	specs.DELETE("/:id", specController.DeleteSpecification)

	designs := e.Group("/api/designs")
	designs.Use(middleware.JWTMiddleware())
	designs.GET("", designController.GetDesignVersions)
	designs.POST("", designController.UploadDesign)
	// Only roles that own client sign-off can decide
	designs.PUT("/:id/decision", designController.DecideDesign,
		middleware.RequireRole(models.RoleAdmin, models.RoleTeamLeader, models.RoleSalesRep))

	issues := e.Group("/api/issues")
	issues.Use(middleware.JWTMiddleware())
	issues.GET("", issueController.GetIssues)
	issues.POST("", issueController.CreateIssue)
	issues.PUT("/:id", issueController.UpdateIssue)
	issues.DELETE("/:id", issueController.DeleteIssue)
}
