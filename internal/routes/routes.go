package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sqlbench/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, queryHandler *handlers.QueryHandler, schemaHandler *handlers.SchemaHandler, tableHandler *handlers.TableHandler, databaseHandler *handlers.DatabaseHandler, workspaceHandler *handlers.WorkspaceHandler) {
	api := router.Group("/api/v1")

	queryRoutes := NewQueryRoutes(queryHandler)
	queryRoutes.RegisterRoutes(api)

	schemaRoutes := NewSchemaRoutes(schemaHandler)
	schemaRoutes.RegisterRoutes(api)

	tableRoutes := NewTableRoutes(tableHandler)
	tableRoutes.RegisterRoutes(api)

	databaseRoutes := NewDatabaseRoutes(databaseHandler)
	databaseRoutes.RegisterRoutes(api)

	workspaceRoutes := NewWorkspaceRoutes(workspaceHandler)
	workspaceRoutes.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", databaseHandler.Health)
}
