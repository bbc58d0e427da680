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

	_ "time/tzdata"

	cancelAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_appointment"
	checkSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_slot_availability"
	createAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_appointment"
	createSpecialDateHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_special_date"
	deleteSpecialDateHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_special_date"
	getAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_appointment"
	getBusinessHoursHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_business_hours"
	getDateAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_date_availability"
	getMonthAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_month_availability"
	getNextDatesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_next_available_dates"
	getSuggestedTimesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_suggested_times"
	getWeekAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_week_availability"
	listAppointmentsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_appointments"
	listSpecialDatesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_special_dates"
	updateStatusHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_appointment_status"
	upsertBusinessHoursHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/upsert_business_hours"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	scheduleCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/schedule"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	businessHoursRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/business_hours"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
	specialDateRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/special_date"
	appointmentsService "github.com/m04kA/SMC-AvailabilityService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	scheduleService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml (timezone=%s, slot=%dm, horizon=%dd)",
		cfg.Schedule.Timezone, cfg.Schedule.SlotDurationMinutes, cfg.Schedule.MaxAdvanceDays)

	// Часовой пояс мастерской: все календарные даты считаются в нем
	location, err := cfg.Schedule.Location()
	if err != nil {
		fmt.Printf("Failed to load timezone: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics допустим: методы Observe* его проверяют
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

	// С метриками репозитории работают через обёртку, считающую запросы
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	txMgr := txmanager.NewTransactionManager(executor)

	// Redis опционален: без него расписание читается напрямую из БД
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, schedule cache will fall back to database: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to Redis at %s (ttl=%s)", cfg.Redis.Addr, cfg.Schedule.CacheTTL())
		}
		cancelPing()
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(executor)
	hoursRepository := businessHoursRepo.NewRepository(executor)
	specialDateRepository := specialDateRepo.NewRepository(executor)
	slotRepository := slotRepo.NewRepository(executor)

	scheduleStore := scheduleCache.NewStore(
		hoursRepository,
		specialDateRepository,
		redisClient,
		cfg.Schedule.CacheTTL(),
		metricsCollector,
		log,
	)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		slotRepository,
		scheduleStore,
		metricsCollector,
		availabilityService.Config{
			SlotDurationMinutes: cfg.Schedule.SlotDurationMinutes,
			MaxAdvanceDays:      cfg.Schedule.MaxAdvanceDays,
			Location:            location,
		},
		log,
	)
	scheduleSvc := scheduleService.NewService(
		hoursRepository,
		specialDateRepository,
		scheduleStore,
		location,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		availabilitySvc,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getDateAvailability := getDateAvailabilityHandler.NewHandler(availabilitySvc, log)
	getWeekAvailability := getWeekAvailabilityHandler.NewHandler(availabilitySvc, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(availabilitySvc, log)
	getNextDates := getNextDatesHandler.NewHandler(availabilitySvc, log)
	checkSlot := checkSlotHandler.NewHandler(availabilitySvc, log)
	getSuggestedTimes := getSuggestedTimesHandler.NewHandler(availabilitySvc, log)

	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, availabilitySvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, availabilitySvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)

	getBusinessHours := getBusinessHoursHandler.NewHandler(scheduleSvc, log)
	upsertBusinessHours := upsertBusinessHoursHandler.NewHandler(scheduleSvc, log)
	listSpecialDates := listSpecialDatesHandler.NewHandler(scheduleSvc, availabilitySvc, log)
	createSpecialDate := createSpecialDateHandler.NewHandler(scheduleSvc, log)
	deleteSpecialDate := deleteSpecialDateHandler.NewHandler(scheduleSvc, availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxyHeaders, log)
		defer rateLimiter.Close()
		api.Use(rateLimiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// --- Доступность ---
	api.HandleFunc("/availability/dates/{date}", getDateAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/weeks/{date}", getWeekAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/months/{year:[0-9]{4}}/{month:[0-9]{1,2}}", getMonthAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/next", getNextDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/check", checkSlot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/suggestions", getSuggestedTimes.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))

	// --- Расписание ---
	admin.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/business-hours", upsertBusinessHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/special-dates", listSpecialDates.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/special-dates", createSpecialDate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/special-dates/{date}", deleteSpecialDate.Handle).Methods(http.MethodDelete)

	// --- Записи (для мастерской) ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

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
