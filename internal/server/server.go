package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/tidwall/buntdb"

	"sqlbench/internal/config"
	"sqlbench/internal/engine"
	"sqlbench/internal/handlers"
	"sqlbench/internal/logger"
	"sqlbench/internal/middlewares"
	"sqlbench/internal/repositories"
	"sqlbench/internal/routes"
	"sqlbench/internal/services"
)

// NewServer wires the whole application together: config, logger, engine
// connection, workspace store, services, handlers and routes. The returned
// cleanup closes the engine connection and the store; run it after the
// HTTP server has shut down.
func NewServer() (*http.Server, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := engine.Connect(ctx, cfg.DatabaseURL, appLog)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store, err := buntdb.Open(cfg.WorkspacePath)
	if err != nil {
		log.Fatalf("failed to open workspace store: %v", err)
	}

	// Dependency injection
	schemaRepo := repositories.NewSchemaRepository(db, appLog)
	tableRepo := repositories.NewTableRepository(db)
	historyRepo := repositories.NewQueryHistoryRepository(store, cfg.HistoryLimit)
	workspaceRepo := repositories.NewWorkspaceRepository(store)

	schemaService := services.NewSchemaService(schemaRepo, appLog)
	queryService := services.NewQueryService(db, historyRepo, appLog)
	importService := services.NewImportService(db, schemaService, appLog)
	exportService := services.NewExportService(schemaService, tableRepo, appLog)
	tableService := services.NewTableService(schemaService, tableRepo)
	databaseService := services.NewDatabaseService(db, schemaService, importService, appLog)
	workspaceService := services.NewWorkspaceService(workspaceRepo)

	if cfg.SeedDemo {
		if err := services.SeedDemo(ctx, db, schemaService, appLog); err != nil {
			appLog.Warn().Err(err).Msg("demo seed failed")
		}
	}

	queryHandler := handlers.NewQueryHandler(queryService)
	schemaHandler := handlers.NewSchemaHandler(schemaService)
	tableHandler := handlers.NewTableHandler(tableService)
	databaseHandler := handlers.NewDatabaseHandler(databaseService, exportService, importService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(appLog))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	routes.RegisterRoutes(router, queryHandler, schemaHandler, tableHandler, databaseHandler, workspaceHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	cleanup := func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := db.Close(closeCtx); err != nil {
			appLog.Warn().Err(err).Msg("failed to close database connection")
		}
		if err := store.Close(); err != nil {
			appLog.Warn().Err(err).Msg("failed to close workspace store")
		}
	}

	return server, cleanup
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
