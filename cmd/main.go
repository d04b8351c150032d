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

	availabilityActionsHandler "github.com/lunanails/NS-BookingService/internal/api/handlers/availability_actions"
	cancelAppointmentHandler "github.com/lunanails/NS-BookingService/internal/api/handlers/cancel_appointment"
	capacityAdminHandler "github.com/lunanails/NS-BookingService/internal/api/handlers/capacity_admin"
	createBookingHandler "github.com/lunanails/NS-BookingService/internal/api/handlers/create_booking"
	getAppointmentHandler "github.com/lunanails/NS-BookingService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/lunanails/NS-BookingService/internal/api/handlers/get_availability"
	listAppointmentsHandler "github.com/lunanails/NS-BookingService/internal/api/handlers/list_appointments"
	updateStatusHandler "github.com/lunanails/NS-BookingService/internal/api/handlers/update_appointment_status"
	"github.com/lunanails/NS-BookingService/internal/api/middleware"
	"github.com/lunanails/NS-BookingService/internal/config"
	availabilityCache "github.com/lunanails/NS-BookingService/internal/infra/cache/availability"
	appointmentRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/appointment"
	capacityRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/capacity"
	catalogRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/catalog"
	customerRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/customer"
	waitlistRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/waitlist"
	calendarSyncClient "github.com/lunanails/NS-BookingService/internal/integrations/calendarsync"
	mailerClient "github.com/lunanails/NS-BookingService/internal/integrations/mailer"
	appointmentsService "github.com/lunanails/NS-BookingService/internal/service/appointments"
	capacityService "github.com/lunanails/NS-BookingService/internal/service/capacity"
	checkBookingUC "github.com/lunanails/NS-BookingService/internal/usecase/check_booking"
	createBookingUC "github.com/lunanails/NS-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/lunanails/NS-BookingService/internal/usecase/get_availability"
	getAvailableSlotsUC "github.com/lunanails/NS-BookingService/internal/usecase/get_available_slots"
	"github.com/lunanails/NS-BookingService/pkg/dbmetrics"
	"github.com/lunanails/NS-BookingService/pkg/logger"
	"github.com/lunanails/NS-BookingService/pkg/metrics"
	"github.com/lunanails/NS-BookingService/pkg/simpletxmanager"
	"github.com/lunanails/NS-BookingService/pkg/txmanager"
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

	log.Info("Starting NS-BookingService...")
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

	// Инициализируем кэш доступности (если включен)
	var availCache *availabilityCache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		availCache = availabilityCache.New(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Инициализируем интеграционных клиентов (если включены)
	var calendarClient *calendarSyncClient.Client
	if cfg.CalendarSync.Enabled {
		calendarClient = calendarSyncClient.NewClient(
			cfg.CalendarSync.URL,
			cfg.CalendarSync.APIKey,
			time.Duration(cfg.CalendarSync.Timeout)*time.Second,
			log,
		)
		log.Info("Calendar sync client initialized (url=%s, timeout=%ds)",
			cfg.CalendarSync.URL, cfg.CalendarSync.Timeout)
	}

	var mailClient *mailerClient.Client
	if cfg.Mailer.Enabled {
		mailClient = mailerClient.NewClient(
			cfg.Mailer.URL,
			cfg.Mailer.APIKey,
			cfg.Mailer.AdminEmail,
			time.Duration(cfg.Mailer.Timeout)*time.Second,
			log,
		)
		log.Info("Mailer client initialized (url=%s, timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		catalogRepository     *catalogRepo.Repository
		capacityRepository    *capacityRepo.Repository
		customerRepository    *customerRepo.Repository
		waitlistRepository    *waitlistRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		capacityRepository = capacityRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		capacityRepository = capacityRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	capacitySvc := capacityService.NewService(
		catalogRepository,
		capacityRepository,
		customerRepository,
		waitlistRepository,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		calendarClientOrNil(calendarClient),
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		catalogRepository,
		appointmentRepository,
		capacityRepository,
		cacheOrNil(availCache),
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(getAvailabilityUseCase, log)

	checkBookingUseCase := checkBookingUC.NewUseCase(
		catalogRepository,
		appointmentRepository,
		capacityRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		appointmentRepository,
		customerRepository,
		checkBookingUseCase,
		getAvailableSlotsUseCase,
		createCalendarOrNil(calendarClient),
		createMailerOrNil(mailClient),
		invalidatorOrNil(availCache),
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	availabilityActions := availabilityActionsHandler.NewHandler(checkBookingUseCase, getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	capacityAdmin := capacityAdminHandler.NewHandler(capacitySvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность услуг по слотам на день
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Действия над доступностью: проверка слота, общие слоты, альтернативы
	api.HandleFunc("/availability", availabilityActions.Handle).Methods(http.MethodPost)

	// Создание записи
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken, log))

	// --- Вместимость ---
	admin.HandleFunc("/capacity", capacityAdmin.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/capacity", capacityAdmin.HandlePost).Methods(http.MethodPost)

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", updateStatus.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}", cancelAppointment.Handle).Methods(http.MethodDelete)

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

// Выключенные интеграции передаются в конструкторы как nil интерфейсы.
// Типизированный nil указатель в интерфейсе не равен nil, поэтому
// конвертация явная

func cacheOrNil(c *availabilityCache.Cache) getAvailabilityUC.AvailabilityCache {
	if c == nil {
		return nil
	}
	return c
}

func invalidatorOrNil(c *availabilityCache.Cache) createBookingUC.AvailabilityInvalidator {
	if c == nil {
		return nil
	}
	return c
}

func createCalendarOrNil(c *calendarSyncClient.Client) createBookingUC.CalendarSyncClient {
	if c == nil {
		return nil
	}
	return c
}

func createMailerOrNil(c *mailerClient.Client) createBookingUC.MailerClient {
	if c == nil {
		return nil
	}
	return c
}

func calendarClientOrNil(c *calendarSyncClient.Client) appointmentsService.CalendarSyncClient {
	if c == nil {
		return nil
	}
	return c
}
