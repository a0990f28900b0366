package routes

import (
	"schemacanvas/internal/handlers"

	"github.com/gin-gonic/gin"
)

type TableRoutes struct {
	handler *handlers.TableHandler
}

func NewTableRoutes(handler *handlers.TableHandler) *TableRoutes {
	return &TableRoutes{handler: handler}
}

func (r *TableRoutes) RegisterRoutes(router *gin.RouterGroup) {
	tables := router.Group("/projects/:id/tables")
	{
		tables.POST("", r.handler.CreateTable)
		tables.GET("", r.handler.ListTables)
		tables.DELETE("/:tableId", r.handler.DeleteTable)
	}
}
