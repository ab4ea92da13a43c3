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

	blockedDatesHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/blocked_dates"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/get_appointments"
	getAvailabilityHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/get_available_slots"
	getDashboardHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/get_dashboard"
	recurringHolidaysHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/recurring_holidays"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/reschedule_appointment"
	saveSettingsHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/save_settings"
	specialDaysHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/special_days"
	updateCompletionHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/update_completion"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	"github.com/m04kA/SMC-SalonConsole/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/calendar"
	settingsRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/settings"
	appointmentsService "github.com/m04kA/SMC-SalonConsole/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-SalonConsole/internal/service/availability"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonConsole/internal/usecase/get_available_slots"
	getDashboardUC "github.com/m04kA/SMC-SalonConsole/internal/usecase/get_dashboard"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonConsole/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonConsole/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonConsole/pkg/logger"
	"github.com/m04kA/SMC-SalonConsole/pkg/metrics"
	"github.com/m04kA/SMC-SalonConsole/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("SALON_CONFIG"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting salon-console...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Обёртка над БД; без метрик запросы просто проксируются
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	calendarRepository := calendarRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		settingsRepository,
		calendarRepository,
		log,
	)
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		availabilitySvc,
		txMgr,
		metricsCollector,
		nil,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		nil,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		txMgr,
		metricsCollector,
		nil,
		log,
	)
	getDashboardUseCase := getDashboardUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		nil,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	saveSettings := saveSettingsHandler.NewHandler(availabilitySvc, log)
	blockedDates := blockedDatesHandler.NewHandler(availabilitySvc, log)
	recurringHolidays := recurringHolidaysHandler.NewHandler(availabilitySvc, log)
	specialDays := specialDaysHandler.NewHandler(availabilitySvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateCompletion := updateCompletionHandler.NewHandler(appointmentSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getDashboard := getDashboardHandler.NewHandler(getDashboardUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Настройки и календарь салона ---
	protected.HandleFunc("/salons/{salonId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/availability/settings", saveSettings.Handle).Methods(http.MethodPut)

	protected.HandleFunc("/salons/{salonId}/blocked-dates", blockedDates.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/blocked-dates/{date}", blockedDates.HandleRemove).Methods(http.MethodDelete)

	protected.HandleFunc("/salons/{salonId}/holidays", recurringHolidays.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/holidays/{holidayId}", recurringHolidays.HandleRemove).Methods(http.MethodDelete)

	protected.HandleFunc("/salons/{salonId}/special-days", specialDays.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/special-days/{date}", specialDays.HandleRemove).Methods(http.MethodDelete)

	// --- Слоты ---
	protected.HandleFunc("/salons/{salonId}/stylists/{stylistId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	protected.HandleFunc("/salons/{salonId}/appointments", getAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", updateCompletion.HandleComplete).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/incomplete", updateCompletion.HandleUndo).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// --- Статистика ---
	protected.HandleFunc("/salons/{salonId}/dashboard", getDashboard.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
