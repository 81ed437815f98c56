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

	cancelBookingHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/get_booking"
	getDayBookingsHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/get_day_bookings"
	getRulesHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/get_rules"
	getUserBookingsHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/get_user_bookings"
	listAmenitiesHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/list_amenities"
	updateRulesHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/update_rules"
	watchDayBookingsHandler "github.com/circlein/CIN-BookingService/internal/api/handlers/watch_day_bookings"
	"github.com/circlein/CIN-BookingService/internal/api/middleware"
	"github.com/circlein/CIN-BookingService/internal/config"
	amenityRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/amenity"
	bookingRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/booking"
	rulesRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/rules"
	"github.com/circlein/CIN-BookingService/internal/notifier"
	amenitiesService "github.com/circlein/CIN-BookingService/internal/service/amenities"
	bookingsService "github.com/circlein/CIN-BookingService/internal/service/bookings"
	rulesService "github.com/circlein/CIN-BookingService/internal/service/rules"
	cancelBookingUC "github.com/circlein/CIN-BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/circlein/CIN-BookingService/internal/usecase/create_booking"
	"github.com/circlein/CIN-BookingService/pkg/dbmetrics"
	"github.com/circlein/CIN-BookingService/pkg/logger"
	"github.com/circlein/CIN-BookingService/pkg/metrics"
	"github.com/circlein/CIN-BookingService/pkg/simpletxmanager"
	"github.com/circlein/CIN-BookingService/pkg/txmanager"
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

	log.Info("Starting CIN-BookingService...")
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

	// Подключаемся к Redis (канал уведомлений об изменении расписания)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr(), cfg.Redis.DB)

	dayNotifier := notifier.New(redisClient, log)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		rulesRepository   *rulesRepo.Repository
		amenityRepository *amenityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		rulesRepository = rulesRepo.NewRepository(wrappedDB)
		amenityRepository = amenityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		rulesRepository = rulesRepo.NewRepository(db)
		amenityRepository = amenityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	rulesSvc := rulesService.NewService(rulesRepository, log)
	amenitySvc := amenitiesService.NewService(amenityRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		rulesRepository,
		amenityRepository,
		txMgr,
		dayNotifier,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		dayNotifier,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	watchDayBookings := watchDayBookingsHandler.NewHandler(bookingSvc, dayNotifier, log)
	getRules := getRulesHandler.NewHandler(rulesSvc, log)
	updateRules := updateRulesHandler.NewHandler(rulesSvc, log)
	listAmenities := listAmenitiesHandler.NewHandler(amenitySvc, log)

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

	// Каталог объектов сообщества
	api.HandleFunc("/amenities", listAmenities.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/amenities/{amenityId}", listAmenities.HandleGet).Methods(http.MethodGet)

	// Действующие правила бронирования
	api.HandleFunc("/rules", getRules.Handle).Methods(http.MethodGet)

	// Расписание на дату и подписка на его изменения
	api.HandleFunc("/schedule/{date}", getDayBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/{date}/watch", watchDayBookings.Handle).Methods(http.MethodGet)

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

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Обновление правил бронирования
	protected.HandleFunc("/rules", updateRules.Handle).Methods(http.MethodPut)

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
