package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"halcon-service/config"
	"halcon-service/internal/api"
	"halcon-service/internal/broker"
	"halcon-service/internal/redisclient"
	"halcon-service/internal/service"
	"halcon-service/internal/store"
	"halcon-service/internal/util"
	"halcon-service/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := util.InitLogger(cfg.Server.Env, cfg.Observ.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	if err := run(cfg); err != nil {
		util.GetLogger().Error("Server exited with error", zap.Error(err))
		util.SyncLogger()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := util.GetLogger()
	logger.Info("Starting halcon service", zap.String("env", cfg.Server.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Observ.JaegerEndpoint != "" {
		tp, err := util.InitTracer(util.ServiceName, cfg.Observ.JaegerEndpoint)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Error shutting down tracer", zap.Error(err))
			}
		}()
	}

	db, err := store.NewStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	if cfg.Database.MigrateOnStart {
		if err := store.Migrate(ctx, db.GetDB().DB, "up"); err != nil {
			return err
		}
		logger.Info("Migrations applied")
	}

	var idempotency service.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
		idempotency = redisClient
		logger.Info("Redis connected, idempotent batches enabled")
	}

	var publisher service.Publisher = service.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		logger.Info("Kafka producer initialized", zap.String("topic", cfg.Kafka.TopicEvents))
	}

	detailService := service.NewDetailService(db, idempotency, publisher, cfg.Redis.IdempotencyTTL)
	pawnService := service.NewPawnService(db, publisher, cfg.Business.StrictPawnTransitions)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(api.Services{
		Products:  service.NewProductService(db),
		Customers: service.NewCustomerService(db),
		Providers: service.NewProviderService(db),
		Employees: service.NewEmployeeService(db),
		Invoices:  service.NewInvoiceService(db),
		Details:   detailService,
		Pawns:     pawnService,
		Audit:     db,
		DB:        db,
	}, cfg.Server.ClientOrigin, logger)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	statsJob := worker.NewStatsJob(db, cfg.Business.StatsSchedule)
	g.Go(func() error {
		return statsJob.Start(gctx)
	})

	if cfg.Kafka.Enabled() {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
		auditWorker := worker.NewAuditWorker(consumer, db)
		g.Go(func() error {
			err := auditWorker.Start(gctx)
			if stopErr := auditWorker.Stop(); stopErr != nil {
				logger.Warn("Error closing audit consumer", zap.Error(stopErr))
			}
			return err
		})
	}

	err = g.Wait()
	logger.Info("Server exited")
	return err
}
