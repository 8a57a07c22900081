package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/FullUproar/ravenloomai-sub001/internal/config"
	"github.com/FullUproar/ravenloomai-sub001/internal/handler"
	"github.com/FullUproar/ravenloomai-sub001/internal/middleware"
	"github.com/FullUproar/ravenloomai-sub001/internal/model"
	"github.com/FullUproar/ravenloomai-sub001/internal/priority"
	"github.com/FullUproar/ravenloomai-sub001/internal/repository"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(
		&model.Team{},
		&model.Goal{},
		&model.Project{},
		&model.Task{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	teamRepo := repository.NewTeamRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize the priority engine
	resolver := priority.NewResolver(taskRepo, goalRepo, projectRepo)
	detector := priority.NewDetector(taskRepo, resolver)
	orchestrator := priority.NewOrchestrator(taskRepo, goalRepo, resolver)
	suggester := priority.NewSuggester(taskRepo, goalRepo, detector)
	ranker := priority.NewRanker(taskRepo)

	// Initialize handlers
	priorityHandler := handler.NewPriorityHandler()
	goalHandler := handler.NewGoalHandler(orchestrator)
	taskHandler := handler.NewTaskHandler(resolver, orchestrator)
	teamHandler := handler.NewTeamHandler(teamRepo, taskRepo, detector, orchestrator, suggester, ranker)

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Priority scale
		authorized.GET("/priority/scale", priorityHandler.Scale)

		// Goal routes
		authorized.PUT("/goals/:id/priority", goalHandler.SetPriority)

		// Task routes
		authorized.GET("/tasks/:id/priority", taskHandler.ResolvePriority)
		authorized.PUT("/tasks/:id/priority", taskHandler.SetPriority)

		// Team routes
		authorized.GET("/teams/:id/priorities", teamHandler.Priorities)
		authorized.GET("/teams/:id/conflicts", teamHandler.Conflicts)
		authorized.GET("/teams/:id/conflicts/summary", teamHandler.ConflictSummary)
		authorized.POST("/teams/:id/recompute", teamHandler.Recompute)
		authorized.GET("/teams/:id/suggestions", teamHandler.Suggestions)
		authorized.GET("/teams/:id/queue", teamHandler.Queue)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
