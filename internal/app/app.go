package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"deployhub_backend/database"
	"deployhub_backend/internal/config"
	"deployhub_backend/internal/graph"
	"deployhub_backend/internal/handlers"
	"deployhub_backend/internal/logger"
	"deployhub_backend/internal/middleware"
	"deployhub_backend/internal/repositories"
	"deployhub_backend/internal/routes"
	"deployhub_backend/internal/services"
)

func Run() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full Gin engine: repositories, services, the
// executable GraphQL schema and all middleware. Tests reuse it directly.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	userRepo := repositories.NewUserRepository(gormDB)
	appRepo := repositories.NewAppRepository(gormDB)

	accountService := services.NewAccountService(userRepo)

	resolver := graph.NewResolver(userRepo, appRepo, accountService)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		logger.Fatal("Failed to build GraphQL schema", "error", err)
	}

	appHandlers := &handlers.AppHandlers{
		GraphQLHandler: handlers.NewGraphQLHandler(&schema, cfg.GraphQL.GraphiQL, cfg.GraphQL.Pretty),
		HealthHandler:  handlers.NewHealthHandler(gormDB),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoadersMiddleware(userRepo, appRepo))

	routes.RegisterRoutes(router, appHandlers)
	return router
}
