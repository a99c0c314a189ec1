package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api"
	"github.com/m04kA/SMC-RecoveryBooking/internal/config"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/session"
	submissionRepo "github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/submission"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/token"
	bookingAPIClient "github.com/m04kA/SMC-RecoveryBooking/internal/integrations/bookingapi"
	bookingsService "github.com/m04kA/SMC-RecoveryBooking/internal/service/bookings"
	bookingWizardUC "github.com/m04kA/SMC-RecoveryBooking/internal/usecase/booking_wizard"
	"github.com/m04kA/SMC-RecoveryBooking/pkg/logger"
	"github.com/m04kA/SMC-RecoveryBooking/pkg/metrics"
)

func main() {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Failed to read .env: %v\n", err)
	}

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RecoveryBooking...")
	log.Info("Configuration loaded from config.toml (booking API=%s)", cfg.BookingAPI.BaseURL)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище bearer токенов: Redis или память процесса
	var tokenStore token.Store
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		tokenStore = token.NewRedisStore(rdb, time.Duration(cfg.Redis.TokenTTL)*time.Second)
		log.Info("Token store: redis (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TokenTTL)
	} else {
		tokenStore = token.NewMemoryStore()
		log.Info("Token store: in-memory")
	}

	// Журнал заявок в PostgreSQL (если включен)
	var journal bookingWizardUC.SubmissionJournal
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		journal = submissionRepo.NewRepository(db)
	}

	// Инициализируем клиента booking API
	var upstreamMetrics bookingAPIClient.Metrics
	if metricsCollector != nil {
		upstreamMetrics = metricsCollector
	}
	client := bookingAPIClient.NewClient(
		cfg.BookingAPI.BaseURL,
		cfg.BookingAPI.RequestTimeout(),
		bookingAPIClient.RetryPolicy{
			MaxRetries:      cfg.BookingAPI.MaxRetries,
			InitialInterval: cfg.BookingAPI.InitialBackoff(),
			MaxInterval:     cfg.BookingAPI.MaxBackoff(),
			Multiplier:      cfg.BookingAPI.BackoffMultiplier,
			Jitter:          cfg.BookingAPI.BackoffJitter,
		},
		token.NewSessionProvider(tokenStore),
		upstreamMetrics,
		log,
	)
	log.Info("Booking API client initialized (url=%s, timeout=%ds, max_retries=%d)",
		cfg.BookingAPI.BaseURL, cfg.BookingAPI.Timeout, cfg.BookingAPI.MaxRetries)

	// Инициализируем сервисы и use cases
	bookingSvc := bookingsService.NewService(client, cfg.BookingAPI.DateWindowDays, log)

	var wizardMetrics bookingWizardUC.Metrics
	if metricsCollector != nil {
		wizardMetrics = metricsCollector
	}
	wizardUseCase := bookingWizardUC.NewUseCase(bookingSvc, journal, wizardMetrics, log)

	// Реестр сессий мастера
	var sessionMetrics session.Metrics
	if metricsCollector != nil {
		sessionMetrics = metricsCollector
	}
	registry := session.NewRegistry(sessionMetrics)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go registry.RunSweeper(sweepCtx,
		time.Duration(cfg.Sessions.SweepInterval)*time.Second,
		time.Duration(cfg.Sessions.TTL)*time.Second,
		func(ids []string) {
			for _, id := range ids {
				if err := tokenStore.Delete(sweepCtx, id); err != nil {
					log.Warn("Failed to delete token of expired session=%s: %v", id, err)
				}
			}
			log.Info("Expired %d idle wizard session(s)", len(ids))
		},
	)

	// Настраиваем роутер
	r := api.NewRouter(api.Deps{
		Registry:    registry,
		Tokens:      tokenStore,
		UseCase:     wizardUseCase,
		Logger:      log,
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
