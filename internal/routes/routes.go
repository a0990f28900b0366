package routes

import (
	"net/http"

	"schemacanvas/internal/handlers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, projectHandler *handlers.ProjectHandler, tableHandler *handlers.TableHandler, diagramHandler *handlers.DiagramHandler) {
	api := router.Group("/api/v1")

	projectRoutes := NewProjectRoutes(projectHandler)
	projectRoutes.RegisterRoutes(api)

	tableRoutes := NewTableRoutes(tableHandler)
	tableRoutes.RegisterRoutes(api)

	diagramRoutes := NewDiagramRoutes(diagramHandler)
	diagramRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
