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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/fintrack/internal/config"
	"github.com/segyhp/fintrack/internal/repository"
	"github.com/segyhp/fintrack/internal/service"
	"github.com/segyhp/fintrack/internal/tracing"

	"github.com/robfig/cron/v3"
)

func main() {
	log.Println("Starting history scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Debug() {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing.ServiceName+"-scheduler", cfg.Tracing.Endpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	emiService := service.NewEMIService(
		repository.NewEMIRepository(db),
		repository.NewResultCache(redisClient, cfg.Redis.CacheTTL),
		cfg,
	)

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetSchedulerLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if err := setupCronJobs(c, cfg, emiService); err != nil {
		log.Fatalf("Error scheduling jobs: %v", err)
	}

	// Expose purge counters and Go runtime metrics
	metricsServer := newMetricsServer(cfg)
	go func() {
		log.Printf("Scheduler metrics on %s", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Metrics server failed to start: %v", err)
		}
	}()

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(ctx); err != nil {
		log.Printf("Metrics server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("Error flushing traces: %v", err)
	}
	log.Println("Scheduler stopped")
}

func newMetricsServer(cfg *config.Config) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Scheduler.MetricsPort,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, emiService *service.EMIService) error {
	if cfg.Scheduler.RetentionDays <= 0 {
		log.Println("History retention disabled, no purge job scheduled")
		return nil
	}

	_, err := c.AddFunc(cfg.Scheduler.PurgeSpec, func() {
		log.Printf("Purging calculations older than %d days...", cfg.Scheduler.RetentionDays)
		purged, err := emiService.PurgeHistory(context.Background())
		if err != nil {
			log.Printf("Error purging calculation history: %v", err)
			return
		}
		log.Printf("Purged %d calculations", purged)
	})
	if err != nil {
		return err
	}

	log.Println("Cron jobs scheduled successfully")
	return nil
}
