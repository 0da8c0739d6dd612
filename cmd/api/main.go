package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/handlers"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Printf("✅ Config loaded successfully (mode: %s)\n", cfg.Server.Mode)

	// Initialize database (optional)
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()

	embeddingProvider, err := services.NewEmbeddingProvider(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding provider: %v", err)
	}
	embeddingService, err := services.NewEmbeddingService(embeddingProvider, cfg.Embedding.Dimension, cfg.Embedding.CacheSize)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding service: %v", err)
	}

	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := embeddingService.Warmup(warmupCtx); err != nil {
		cancelWarmup()
		log.Fatalf("❌ %v", err)
	}
	cancelWarmup()

	resumeStore, err := services.NewResumeStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize resume index: %v", err)
	}
	log.Printf("✅ Resume index initialized (%s)\n", cfg.Ranking.IndexBackend)

	worker := services.NewWorker(pdfParser, embeddingService, cfg.Worker.Concurrency)
	rankerService := services.NewRankerService(
		pdfParser,
		embeddingService,
		worker,
		resumeStore,
		storageService,
		docRepo,
		cfg.Ranking.TopK,
	)

	generator, err := services.NewTextGenerator(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize feedback backend: %v", err)
	}
	feedbackService := services.NewFeedbackService(generator, feedbackRepo, cfg.Feedback.Timeout)
	log.Printf("✅ Services initialized successfully (feedback: %s)\n", generator.Name())

	// Initialize handlers
	rankHandler := handlers.NewRankHandler(rankerService, cfg.Storage.MaxFileSize)
	uploadHandler := handlers.NewUploadHandler(rankerService, cfg.Storage.MaxFileSize)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	resumeHandler := handlers.NewResumeHandler(resumeStore, docRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Ranker API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 2 * cfg.Feedback.Timeout,
		BodyLimit:    int(cfg.Storage.MaxRequestSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS,HEAD",
		AllowHeaders:     "*",
		AllowCredentials: true,
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now(),
			"mode":    cfg.Server.Mode,
			"indexed": resumeStore.Len(),
		})
	})

	// API endpoints
	endpoints := []string{"POST /llm_feedback/"}
	app.Post("/llm_feedback/", feedbackHandler.HandleFeedback)

	switch cfg.Server.Mode {
	case config.ModeBatch:
		app.Post("/rank_resumes/", rankHandler.HandleRankBatch)
		endpoints = append(endpoints, "POST /rank_resumes/")
	case config.ModeIncremental:
		app.Post("/upload_resume/", uploadHandler.HandleUploadResume)
		app.Post("/rank_resumes/", rankHandler.HandleRankStored)
		app.Get("/resumes/", resumeHandler.HandleListResumes)
		app.Get("/resumes/:id", resumeHandler.HandleGetResume)
		endpoints = append(endpoints,
			"POST /upload_resume/",
			"POST /rank_resumes/",
			"GET /resumes/",
			"GET /resumes/:id",
		)
	}

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Resume Ranker API",
			"version":   "1.0.0",
			"mode":      cfg.Server.Mode,
			"endpoints": endpoints,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Printf("❌ Failed to start server: %v", err)
	}

	if err := resumeStore.Close(); err != nil {
		log.Printf("❌ Failed to close resume index: %v", err)
	}
	embeddingService.Close()
	log.Println("👋 Server stopped")
}
