package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/vitalboard/platform/pkg/common/config"
	"github.com/vitalboard/platform/pkg/common/database"
	"github.com/vitalboard/platform/pkg/common/kafka"
	"github.com/vitalboard/platform/pkg/common/logger"
	"github.com/vitalboard/platform/pkg/registry"
	"github.com/vitalboard/platform/pkg/risk"
	"github.com/vitalboard/platform/pkg/server/middleware"
)

func main() {
	logger.Init()
	cfg := config.Load()

	weights, err := risk.LoadWeights(cfg.RiskWeightsPath)
	if err != nil {
		logger.Log.WithError(err).Warn("Falling back to default risk weights")
	}
	engine := risk.NewEngine(weights)

	store, err := buildStore(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize collection store")
	}

	producer := kafka.NewProducer(cfg.KafkaEventsTopic)
	defer producer.Close()

	service := registry.NewService(store, engine, registry.WithPublisher(producer))

	consumer := kafka.NewConsumer(cfg.KafkaIntakeTopic, "risk-service")
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		// Intake records take the bulk path: lenient normalization, no
		// form gate.
		err := consumer.ConsumeRecords(ctx, func(ctx context.Context, record map[string]interface{}) error {
			_, err := service.IngestRecord(ctx, record)
			return err
		})
		if err != nil && ctx.Err() == nil {
			logger.Log.WithError(err).Fatal("Consumer error")
		}
	}()

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	registry.NewHandler(service).Register(api)

	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)
	router.Use(middleware.CORS)
	router.Use(middleware.BodyLimit(cfg.MaxRequestBody))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host":    cfg.ServerHost,
			"port":    cfg.ServerPort,
			"backend": cfg.StoreBackend,
		}).Info("Risk Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Risk Service...")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	database.CloseRedis()
	database.ClosePostgres()

	logger.Log.Info("Risk Service stopped")
}

func buildStore(cfg *config.Config) (registry.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return registry.NewRedisStore(database.GetRedis(), cfg.CollectionKey), nil
	case "postgres":
		db, err := database.GetPostgres()
		if err != nil {
			return nil, err
		}
		store := registry.NewPostgresStore(db, cfg.CollectionKey)
		if err := store.AutoMigrate(); err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return registry.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
