package routes

import (
	"github.com/gin-gonic/gin"

	"sqlbench/internal/handlers"
)

type DatabaseRoutes struct {
	handler *handlers.DatabaseHandler
}

func NewDatabaseRoutes(handler *handlers.DatabaseHandler) *DatabaseRoutes {
	return &DatabaseRoutes{handler: handler}
}

func (r *DatabaseRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/export", r.handler.ExportDatabase)
	router.POST("/import", r.handler.ImportDatabase)

	database := router.Group("/database")
	{
		database.POST("/clear", r.handler.ClearDatabase)
	}
}
