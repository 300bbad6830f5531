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

	completeSessionHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/complete_session"
	createInstantBookingHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/create_instant_booking"
	createScheduledBookingHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/create_scheduled_booking"
	getBookingHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/get_booking"
	getProviderBookingsHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/get_provider_bookings"
	getQuoteHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/get_quote"
	getSessionHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/get_session"
	getUserBookingsHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/get_user_bookings"
	getUserSessionsHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/get_user_sessions"
	joinSessionHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/join_session"
	rescheduleSessionHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/reschedule_session"
	respondBookingHandler "github.com/m04kA/SMC-SessionsService/internal/api/handlers/respond_booking"
	"github.com/m04kA/SMC-SessionsService/internal/api/middleware"
	"github.com/m04kA/SMC-SessionsService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/booking"
	pricingRulesRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/pricingrules"
	sessionRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/session"
	catalogServiceClient "github.com/m04kA/SMC-SessionsService/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/SMC-SessionsService/internal/service/bookings"
	sessionsService "github.com/m04kA/SMC-SessionsService/internal/service/sessions"
	createInstantBookingUC "github.com/m04kA/SMC-SessionsService/internal/usecase/create_instant_booking"
	createScheduledBookingUC "github.com/m04kA/SMC-SessionsService/internal/usecase/create_scheduled_booking"
	getBookingQuoteUC "github.com/m04kA/SMC-SessionsService/internal/usecase/get_booking_quote"
	rescheduleSessionUC "github.com/m04kA/SMC-SessionsService/internal/usecase/reschedule_session"
	respondBookingUC "github.com/m04kA/SMC-SessionsService/internal/usecase/respond_booking"
	"github.com/m04kA/SMC-SessionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SessionsService/pkg/logger"
	"github.com/m04kA/SMC-SessionsService/pkg/metrics"
	"github.com/m04kA/SMC-SessionsService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SessionsService/pkg/txmanager"
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

	log.Info("Starting SMC-SessionsService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиента каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		sessionRepository      *sessionRepo.Repository
		pricingRulesRepository *pricingRulesRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		pricingRulesRepository = pricingRulesRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		pricingRulesRepository = pricingRulesRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	sessionSvc := sessionsService.NewService(sessionRepository, bookingRepository, txMgr, log)

	// Инициализируем use cases
	getBookingQuoteUseCase := getBookingQuoteUC.NewUseCase(
		catalogClient,
		pricingRulesRepository,
		log,
	)
	createInstantBookingUseCase := createInstantBookingUC.NewUseCase(
		bookingRepository,
		pricingRulesRepository,
		catalogClient,
		log,
	)
	createScheduledBookingUseCase := createScheduledBookingUC.NewUseCase(
		bookingRepository,
		pricingRulesRepository,
		catalogClient,
		log,
	)
	respondBookingUseCase := respondBookingUC.NewUseCase(
		bookingRepository,
		sessionRepository,
		txMgr,
		log,
	)
	rescheduleSessionUseCase := rescheduleSessionUC.NewUseCase(
		sessionRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getQuote := getQuoteHandler.NewHandler(getBookingQuoteUseCase, log)
	createInstantBooking := createInstantBookingHandler.NewHandler(createInstantBookingUseCase, log)
	createScheduledBooking := createScheduledBookingHandler.NewHandler(createScheduledBookingUseCase, log)
	respondBooking := respondBookingHandler.NewHandler(respondBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	getUserSessions := getUserSessionsHandler.NewHandler(sessionSvc, log)
	joinSession := joinSessionHandler.NewHandler(sessionSvc, log)
	rescheduleSession := rescheduleSessionHandler.NewHandler(rescheduleSessionUseCase, log)
	completeSession := completeSessionHandler.NewHandler(sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчёт цены сессии
	api.HandleFunc("/services/{serviceId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки ---
	// Создание мгновенной заявки
	protected.HandleFunc("/bookings/instant", createInstantBooking.Handle).Methods(http.MethodPost)

	// Создание запланированной заявки
	protected.HandleFunc("/bookings/scheduled", createScheduledBooking.Handle).Methods(http.MethodPost)

	// Ответ провайдера на заявку
	protected.HandleFunc("/bookings/{bookingId}/respond", respondBooking.Handle).Methods(http.MethodPatch)

	// Получение заявки по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// История заявок клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Список заявок провайдера
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

	// --- Сессии ---
	// Сессии пользователя (в обеих ролях)
	protected.HandleFunc("/users/{userId}/sessions", getUserSessions.Handle).Methods(http.MethodGet)

	// Получение сессии по ID
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Доступность подключения к сессии
	protected.HandleFunc("/sessions/{sessionId}/join", joinSession.Handle).Methods(http.MethodGet)

	// Перенос сессии
	protected.HandleFunc("/sessions/{sessionId}/reschedule", rescheduleSession.Handle).Methods(http.MethodPatch)

	// Завершение сессии (только провайдер)
	protected.HandleFunc("/sessions/{sessionId}/complete", completeSession.Handle).Methods(http.MethodPatch)

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
