package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"schemacanvas/internal/database"
	"schemacanvas/internal/handlers"
	"schemacanvas/internal/observability"
	"schemacanvas/internal/repositories"
	"schemacanvas/internal/routes"
	"schemacanvas/internal/services"
)

func NewServer(logger zerolog.Logger) (*http.Server, error) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	pool, err := database.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(pool); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Dependency injection
	projectRepo := repositories.NewProjectRepository(pool)
	tableRepo := repositories.NewTableRepository(pool)
	relationshipRepo := repositories.NewRelationshipRepository(pool)

	projectService := services.NewProjectService(projectRepo)
	tableService := services.NewTableService(tableRepo)
	storeFactory := func(projectID uuid.UUID) services.DomainStore {
		return repositories.NewProjectStore(projectID, tableRepo, relationshipRepo)
	}
	manager := services.NewDiagramManager(storeFactory, logger)

	projectHandler := handlers.NewProjectHandler(projectService, manager)
	tableHandler := handlers.NewTableHandler(tableService)
	diagramHandler := handlers.NewDiagramHandler(manager)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestLogger(logger))
	router.Use(cors.New(corsConfig()))

	routes.RegisterRoutes(router, projectHandler, tableHandler, diagramHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, nil
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowOrigins = strings.Split(origins, ",")
	return config
}
