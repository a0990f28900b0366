package routes

import (
	"schemacanvas/internal/handlers"

	"github.com/gin-gonic/gin"
)

type DiagramRoutes struct {
	handler *handlers.DiagramHandler
}

func NewDiagramRoutes(handler *handlers.DiagramHandler) *DiagramRoutes {
	return &DiagramRoutes{handler: handler}
}

func (r *DiagramRoutes) RegisterRoutes(router *gin.RouterGroup) {
	diagram := router.Group("/projects/:id/diagram")
	{
		diagram.GET("", r.handler.GetDiagram)
		diagram.POST("/nodes/changes", r.handler.ApplyNodeChanges)
		diagram.POST("/edges/changes", r.handler.ApplyEdgeChanges)
		diagram.POST("/connect", r.handler.Connect)
	}

	router.GET("/projects/:id/notifications", r.handler.Notifications)
}
