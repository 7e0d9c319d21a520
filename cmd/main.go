package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createExceptionHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_exception"
	createLimitRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_limit_rule"
	deleteExceptionHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_exception"
	getExceptionHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_exception"
	listExceptionsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_exceptions"
	listLimitRulesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_limit_rules"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	exceptionRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/exception"
	limitRuleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/limitrule"
	exceptionsService "github.com/m04kA/SMC-ScheduleService/internal/service/exceptions"
	limitsService "github.com/m04kA/SMC-ScheduleService/internal/service/limits"
	createExceptionUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_exception"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeops"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

func main() {
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

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Нормализатор времени с операционной зоной провайдеров
	normalizer, err := timeops.NewNormalizer(cfg.Schedule.Timezone, nil)
	if err != nil {
		log.Fatal("Failed to initialize time normalizer: %v", err)
	}
	log.Info("Operating timezone: %s", cfg.Schedule.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		excRepo  *exceptionRepo.Repository
		ruleRepo *limitRuleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		excRepo = exceptionRepo.NewRepository(wrappedDB)
		ruleRepo = limitRuleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		excRepo = exceptionRepo.NewRepository(db)
		ruleRepo = limitRuleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	limitsSvc := limitsService.NewService(ruleRepo, log)
	exceptionsSvc := exceptionsService.NewService(excRepo, normalizer, log)

	// Инициализируем use cases
	createExceptionUseCase := createExceptionUC.NewUseCase(
		excRepo,
		limitsSvc,
		txMgr,
		normalizer,
		log,
	)

	// Инициализируем handlers
	createException := createExceptionHandler.NewHandler(createExceptionUseCase, log)
	getException := getExceptionHandler.NewHandler(exceptionsSvc, log)
	listExceptions := listExceptionsHandler.NewHandler(exceptionsSvc, log)
	deleteException := deleteExceptionHandler.NewHandler(exceptionsSvc, log)
	createLimitRule := createLimitRuleHandler.NewHandler(limitsSvc, log)
	listLimitRules := listLimitRulesHandler.NewHandler(limitsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Исключения расписания ---
	// Создание исключения (с контролем дневного лимита)
	protected.HandleFunc("/schedule-exceptions", createException.Handle).Methods(http.MethodPost)

	// Получение исключения по ID
	protected.HandleFunc("/schedule-exceptions/{exceptionId}",
		getException.Handle).Methods(http.MethodGet)

	// Список исключений провайдера
	protected.HandleFunc("/providers/{providerId}/schedule-exceptions",
		listExceptions.Handle).Methods(http.MethodGet)

	// Удаление исключения
	protected.HandleFunc("/schedule-exceptions/{exceptionId}",
		deleteException.Handle).Methods(http.MethodDelete)

	// --- Правила лимитов (административные) ---
	// Создание правила лимита
	protected.HandleFunc("/limit-rules", createLimitRule.Handle).Methods(http.MethodPost)

	// Правила, действующие для провайдера (собственные + глобальные)
	protected.HandleFunc("/providers/{providerId}/limit-rules",
		listLimitRules.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
