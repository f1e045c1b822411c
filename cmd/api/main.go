package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "storeflow/api/swagger" // swagger docs
	"storeflow/internal/config"
	"storeflow/internal/database"
	"storeflow/internal/handler"
	"storeflow/internal/middleware"
	"storeflow/internal/service"
	"storeflow/internal/websocket"
	"storeflow/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           StoreFlow Approvals API
// @version         1.0
// @description     Approval requests for store launch projects.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs/.env")
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Init(cfg.AppName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Storage initialization failed")
	}
	defer closeStore()

	if cfg.StoreBackend == config.BackendMemory || cfg.SeedFixtures {
		if err := database.Seed(ctx, repos); err != nil {
			log.Fatal().Err(err).Msg("Fixture seeding failed")
		}
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	jwtSecret := []byte(cfg.JWTSecret)

	// Set up dependencies (Repository -> Service -> Handler)
	departmentService := service.NewDepartmentService(cfg.Departments())
	projectService := service.NewProjectService(repos.Project)
	userService := service.NewUserService(repos.User, jwtSecret, cfg.JWTTTL)
	auditService := service.NewAuditService(repos.Audit)
	approvalService := service.NewApprovalService(repos, projectService, departmentService, wsHub)

	userHandler := handler.NewUserHandler(userService, cfg.JWTTTL, cfg.IsProduction())
	approvalHandler := handler.NewApprovalHandler(approvalService)
	projectHandler := handler.NewProjectHandler(projectService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	auditHandler := handler.NewAuditHandler(auditService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.HTTPRecovery(), middleware.HTTPLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "backend": cfg.StoreBackend})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, jwtSecret)
	})

	auth := middleware.RequireAuth(jwtSecret)
	api := router.Group("")
	userHandler.RegisterRoutes(api, auth)
	approvalHandler.RegisterRoutes(api, auth)
	projectHandler.RegisterRoutes(api, auth)
	departmentHandler.RegisterRoutes(api, auth)
	auditHandler.RegisterRoutes(api, auth)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
