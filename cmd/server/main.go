package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ecspend/lending-engine/internal/config"
	"github.com/ecspend/lending-engine/internal/handler"
	"github.com/ecspend/lending-engine/internal/repository"
	"github.com/ecspend/lending-engine/internal/service"
	"github.com/ecspend/lending-engine/pkg/response"
)

func main() {
	// Load .env for local development; environment wins in deployment
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(redisClient, cfg.Business.ProfileStorageKey)
	historyRepo := repository.NewHistoryRepository(db)

	// Initialize service and handlers
	lendingService := service.NewLendingService(profileRepo, historyRepo, cfg)
	lendingHandler := handler.NewLendingHandler(lendingService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(lendingHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.LoggingMiddleware(response.CORSMiddleware(router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(lendingHandler *handler.LendingHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/session", lendingHandler.Resume).Methods("GET")
	api.HandleFunc("/profile/onboard", lendingHandler.Onboard).Methods("POST")
	api.HandleFunc("/profile/unlock", lendingHandler.Unlock).Methods("POST")
	api.HandleFunc("/profile", lendingHandler.Profile).Methods("GET")
	api.HandleFunc("/profile", lendingHandler.Wipe).Methods("DELETE")

	api.HandleFunc("/transactions", lendingHandler.Begin).Methods("POST")
	api.HandleFunc("/transactions/current/entry", lendingHandler.SubmitEntry).Methods("POST")
	api.HandleFunc("/transactions/current/select", lendingHandler.SelectOffer).Methods("POST")
	api.HandleFunc("/transactions/current/frequency", lendingHandler.SetFrequency).Methods("POST")
	api.HandleFunc("/transactions/current/confirm", lendingHandler.Confirm).Methods("POST")
	api.HandleFunc("/transactions/current/back", lendingHandler.Back).Methods("POST")

	api.HandleFunc("/repayments", lendingHandler.Repay).Methods("POST")
	api.HandleFunc("/history", lendingHandler.History).Methods("GET")
	api.HandleFunc("/history/{transactionId}/schedule", lendingHandler.Schedule).Methods("GET")

	return router
}
