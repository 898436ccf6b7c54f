package routes

import (
	"github.com/gin-gonic/gin"

	"sqlbench/internal/handlers"
)

type QueryRoutes struct {
	handler *handlers.QueryHandler
}

func NewQueryRoutes(handler *handlers.QueryHandler) *QueryRoutes {
	return &QueryRoutes{handler: handler}
}

func (r *QueryRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/query", r.handler.ExecuteQuery)

	history := router.Group("/history")
	{
		history.GET("", r.handler.GetQueryHistory)
		history.DELETE("", r.handler.ClearQueryHistory)
	}
}
