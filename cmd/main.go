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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/create_booking"
	dailyReportHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/daily_report"
	generateSlotsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/generate_slots"
	getBookingHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_booking"
	getDaySlotsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_day_slots"
	getTurfBookingsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_turf_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_user_bookings"
	markBookingPaidHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/mark_booking_paid"
	setSlotPricingHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/set_slot_pricing"
	setSlotStatusHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/set_slot_status"
	updateBookingStatusHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/config"
	"github.com/m04kA/SMC-TurfService/internal/infra/cache/reportcache"
	bookingRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TurfService/internal/integrations/notifier"
	turfServiceClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	bookingsService "github.com/m04kA/SMC-TurfService/internal/service/bookings"
	slotsService "github.com/m04kA/SMC-TurfService/internal/service/slots"
	cancelBookingUC "github.com/m04kA/SMC-TurfService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-TurfService/internal/usecase/create_booking"
	dailyReportUC "github.com/m04kA/SMC-TurfService/internal/usecase/daily_report"
	generateSlotsUC "github.com/m04kA/SMC-TurfService/internal/usecase/generate_slots"
	manageSlotsUC "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/logger"
	"github.com/m04kA/SMC-TurfService/pkg/metrics"
	"github.com/m04kA/SMC-TurfService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TurfService/pkg/txmanager"
)

// Notifier общий интерфейс для Publisher и Disabled заглушки
type Notifier interface {
	Notify(ctx context.Context, eventType string, payload interface{}) error
}

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

	log.Info("Starting SMC-TurfService...")
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

	// Подключаемся к Redis (advisory-кэш отчетов)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// Кэш не критичен - отчеты будут пересчитываться из Postgres
		log.Warn("Failed to ping Redis, report cache degraded: %v", err)
	} else {
		log.Info("Successfully connected to Redis (addr=%s)", cfg.Redis.Addr)
	}
	cancelPing()

	reportCache := reportcache.New(rdb, time.Duration(cfg.Redis.ReportTTL)*time.Second)

	// Подключаемся к RabbitMQ (уведомления о бронированиях)
	var eventNotifier Notifier = notifier.Disabled{}
	if cfg.RabbitMQ.Enabled {
		publisher, err := notifier.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			// Уведомления не критичны для бронирования - работаем без них
			log.Warn("Failed to connect to RabbitMQ, notifications disabled: %v", err)
		} else {
			defer publisher.Close()
			eventNotifier = publisher
			log.Info("Successfully connected to RabbitMQ (exchange=%s)", cfg.RabbitMQ.Exchange)
		}
	} else {
		log.Info("RabbitMQ disabled, notifications are no-op")
	}

	// Инициализируем клиент каталога площадок
	turfClient := turfServiceClient.NewClient(
		cfg.TurfService.URL,
		time.Duration(cfg.TurfService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (TurfService=%s timeout=%ds)",
		cfg.TurfService.URL, cfg.TurfService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		turfClient,
		reportCache,
		txMgr,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		turfClient,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		turfClient,
		generateSlotsUseCase,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		turfClient,
		eventNotifier,
		reportCache,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		turfClient,
		eventNotifier,
		reportCache,
		txMgr,
		log,
	)
	dailyReportUseCase := dailyReportUC.NewUseCase(
		slotRepository,
		bookingRepository,
		turfClient,
		reportCache,
		txMgr,
		log,
	)
	manageSlotsUseCase := manageSlotsUC.NewUseCase(
		slotRepository,
		turfClient,
		reportCache,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTurfBookings := getTurfBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	markBookingPaid := markBookingPaidHandler.NewHandler(bookingSvc, log)
	getDaySlots := getDaySlotsHandler.NewHandler(slotSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	setSlotStatus := setSlotStatusHandler.NewHandler(manageSlotsUseCase, log)
	setSlotPricing := setSlotPricingHandler.NewHandler(manageSlotsUseCase, log)
	dailyReport := dailyReportHandler.NewHandler(dailyReportUseCase, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание слотов площадки на дату
	api.HandleFunc("/turfs/{turfId}/slots", getDaySlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования с расчетом возврата
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Служебный перевод статуса (confirmed/completed/no_show)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Фиксация оплаты после подтверждения внешнего платежа
	protected.HandleFunc("/bookings/{bookingId}/payment", markBookingPaid.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для менеджеров) ---
	// Список бронирований площадки
	protected.HandleFunc("/turfs/{turfId}/bookings", getTurfBookings.Handle).Methods(http.MethodGet)

	// Генерация слотов на день или диапазон дат
	protected.HandleFunc("/turfs/{turfId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Административный перевод статуса слотов
	protected.HandleFunc("/turfs/{turfId}/slots/status", setSlotStatus.Handle).Methods(http.MethodPatch)

	// Изменение цен слотов
	protected.HandleFunc("/turfs/{turfId}/slots/pricing", setSlotPricing.Handle).Methods(http.MethodPatch)

	// Дневной отчет по площадке
	protected.HandleFunc("/turfs/{turfId}/reports/daily", dailyReport.Handle).Methods(http.MethodGet)

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
