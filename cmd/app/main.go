package main

import (
	"fmt"
	"log"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"matelog-backend/internal/config"
	"matelog-backend/internal/controller"
	"matelog-backend/internal/db"
	"matelog-backend/internal/repository"
	"matelog-backend/internal/service"
	"matelog-backend/pkg/middleware"
	"matelog-backend/utilities"
)

func main() {
	printStartUpBanner()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	utilities.SetupLogging("working/logs", cfg.RequestDump)

	// Initialize DB using the loaded config and run migrations.
	db.InitDBFromConfig(cfg)
	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	if cfg.DB.Initialize {
		if err := seedDatabase(); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	}

	// Create repositories.
	userRepo := repository.NewUserRepository()
	lessonRepo := repository.NewLessonRepository()
	progressRepo := repository.NewProgressRepository()
	trackingRepo := repository.NewTrackingRepository()

	// Create services.
	authService := service.NewAuthService(userRepo)
	lessonService := service.NewLessonService(lessonRepo, progressRepo)
	topicService := service.NewTopicService(lessonRepo, progressRepo, cfg.Scoring.PassPercent)
	trackingService := service.NewTrackingService(trackingRepo)
	reportService := service.NewReportService(userRepo, lessonRepo, progressRepo, cfg.Reports.OutputDir)

	service.InitReportEventListeners(reportService)

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}

	controller.RegisterRoutes(r, cfg,
		controller.NewAuthController(authService),
		controller.NewLessonController(lessonService),
		controller.NewTopicController(topicService),
		controller.NewTrackingController(trackingService),
		controller.NewReportController(reportService),
	)

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("MATELOG", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("MATELOG API (v%s)\n\n", "1.0.0")
}
