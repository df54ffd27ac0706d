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

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/fintrack/internal/auth"
	"github.com/segyhp/fintrack/internal/config"
	"github.com/segyhp/fintrack/internal/handler"
	"github.com/segyhp/fintrack/internal/repository"
	"github.com/segyhp/fintrack/internal/service"
	"github.com/segyhp/fintrack/internal/tracing"
	"github.com/segyhp/fintrack/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Debug() {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
		log.Printf("Debug logging enabled (env=%s)", cfg.Server.Env)
	}

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
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
	emiRepo := repository.NewEMIRepository(db)
	resultCache := repository.NewResultCache(redisClient, cfg.Redis.CacheTTL)

	sessions := auth.NewSessionStore(redisClient, cfg.Auth.SessionTTL)
	revocations := auth.NewRevocationStore(redisClient)

	// Initialize service
	emiService := service.NewEMIService(emiRepo, resultCache, cfg)

	rateLimiter := handler.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	defer rateLimiter.Stop()

	router := handler.NewRouter(handler.Routes{
		EMI:         handler.NewEMIHandler(emiService),
		Auth:        handler.NewAuthHandler(sessions, revocations, cfg.Auth.SessionTTL),
		Health:      handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout),
		RateLimiter: rateLimiter,
		RequireAuth: auth.Middleware(sessions, revocations),
		LogRequests: cfg.LogRequests(),
	})

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.CORSMiddleware(cfg.Server.CORSOrigin)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s (%s)", server.Addr, cfg.Server.Env)
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
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("Error flushing traces: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
