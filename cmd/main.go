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

	cancelReservationHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/get_schedule"
	getServicesHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/get_services"
	getTenantReservationsHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/get_tenant_reservations"
	rescheduleReservationHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/reschedule_reservation"
	updateLunchExceptionsHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/update_lunch_exceptions"
	updateReservationStatusHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/update_reservation_status"
	updateScheduleHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/update_schedule"
	updateStaffAvailabilityHandler "github.com/dkoval/SBP-BookingService/internal/api/handlers/update_staff_availability"
	"github.com/dkoval/SBP-BookingService/internal/api/middleware"
	"github.com/dkoval/SBP-BookingService/internal/config"
	reservationRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/schedule"
	serviceRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/service"
	"github.com/dkoval/SBP-BookingService/internal/jobs"
	catalogService "github.com/dkoval/SBP-BookingService/internal/service/catalog"
	reservationsService "github.com/dkoval/SBP-BookingService/internal/service/reservations"
	scheduleService "github.com/dkoval/SBP-BookingService/internal/service/schedule"
	createReservationUC "github.com/dkoval/SBP-BookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/dkoval/SBP-BookingService/internal/usecase/get_availability"
	rescheduleReservationUC "github.com/dkoval/SBP-BookingService/internal/usecase/reschedule_reservation"
	"github.com/dkoval/SBP-BookingService/pkg/dbmetrics"
	"github.com/dkoval/SBP-BookingService/pkg/logger"
	"github.com/dkoval/SBP-BookingService/pkg/metrics"
	"github.com/dkoval/SBP-BookingService/pkg/simpletxmanager"
	"github.com/dkoval/SBP-BookingService/pkg/txmanager"
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

	log.Info("Starting SBP-BookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		serviceRepository     *serviceRepo.Repository
	)

	// Интерфейс transaction manager, общий для usecases и сервисов
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		serviceRepository,
		reservationRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		serviceRepository,
		scheduleRepository,
		txMgr,
		cfg.Booking.SlotGranularityMinutes,
		log,
	)

	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		serviceRepository,
		scheduleRepository,
		txMgr,
		cfg.Booking.SlotGranularityMinutes,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getTenantReservations := getTenantReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	updateStaffAvailability := updateStaffAvailabilityHandler.NewHandler(scheduleSvc, log)
	updateLunchExceptions := updateLunchExceptionsHandler.NewHandler(scheduleSvc, log)

	// Фоновая задача автозавершения прошедших бронирований
	var completionJob *jobs.CompletionJob
	if cfg.Jobs.CompletionEnabled {
		completionJob = jobs.NewCompletionJob(reservationRepository, cfg.Jobs.CompletionSchedule, log)
		if err := completionJob.Start(); err != nil {
			log.Fatal("Failed to start completion job: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Сетка доступности слотов
	api.HandleFunc("/tenants/{tenantSlug}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Расписание тенанта: часы работы, доступность сотрудников, обеды
	api.HandleFunc("/tenants/{tenantSlug}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Каталог услуг тенанта
	api.HandleFunc("/tenants/{tenantSlug}/services",
		getServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Tenant-Slug header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.TenantAuth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/tenants/{tenantSlug}/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Список бронирований тенанта
	protected.HandleFunc("/tenants/{tenantSlug}/reservations", getTenantReservations.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перенос бронирования
	protected.HandleFunc("/reservations/{reservationId}", rescheduleReservation.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// Обновление статуса бронирования
	protected.HandleFunc("/reservations/{reservationId}/status",
		updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Управление расписанием ---
	// Замена часов работы
	protected.HandleFunc("/tenants/{tenantSlug}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Замена доступности сотрудника
	protected.HandleFunc("/tenants/{tenantSlug}/staff/{staffId}/availability",
		updateStaffAvailability.Handle).Methods(http.MethodPut)

	// Исключения обеденного перерыва
	protected.HandleFunc("/tenants/{tenantSlug}/lunch-exceptions",
		updateLunchExceptions.HandleUpsert).Methods(http.MethodPut)
	protected.HandleFunc("/tenants/{tenantSlug}/lunch-exceptions",
		updateLunchExceptions.HandleDelete).Methods(http.MethodDelete)

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

	// Останавливаем фоновые задачи
	if completionJob != nil {
		completionJob.Stop()
	}

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
