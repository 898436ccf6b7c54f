package routes

import (
	"github.com/gin-gonic/gin"

	"sqlbench/internal/handlers"
)

type SchemaRoutes struct {
	handler *handlers.SchemaHandler
}

func NewSchemaRoutes(handler *handlers.SchemaHandler) *SchemaRoutes {
	return &SchemaRoutes{handler: handler}
}

func (r *SchemaRoutes) RegisterRoutes(router *gin.RouterGroup) {
	schema := router.Group("/schema")
	{
		schema.GET("", r.handler.GetSchema)
		schema.POST("/refresh", r.handler.RefreshSchema)
		schema.GET("/diagram", r.handler.VisualizeSchema)
	}
}
