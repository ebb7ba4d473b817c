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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	addScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/add_schedule"
	cancelAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_appointment"
	deleteScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_schedule"
	getAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_appointment"
	getAvailableTimesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_times"
	getCompanyHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_company"
	getSchedulesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_schedules"
	makeAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/make_appointment"
	patchScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/patch_schedule"
	patchServiceRulesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/patch_service_rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/memory"
	ownerRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/owner"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	appointmentsService "github.com/m04kA/SMC-AvailabilityService/internal/service/appointments"
	companiesService "github.com/m04kA/SMC-AvailabilityService/internal/service/companies"
	schedulesService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
	getAvailableTimesUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_times"
	makeAppointmentUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/make_appointment"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

type appointmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByOwnerAndTimeRange(ctx context.Context, owner domain.Owner, from, to time.Time) ([]*domain.Appointment, error)
	GetByExactTime(ctx context.Context, owner domain.Owner, at time.Time) (*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
}

type ownerStore interface {
	Exists(ctx context.Context, owner domain.Owner) (bool, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	UpdateCompany(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetUserByPhone(ctx context.Context, phone string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// backend набор хранилищ, за которыми стоит либо PostgreSQL, либо память процесса
type backend struct {
	schedules    cache.ScheduleRepository
	appointments appointmentStore
	owners       ownerStore
	txManager    txManager
	close        func()
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configPath)
		},
	}
}

func runServer(configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s (storage=%s, timezone=%s)",
		configPath, cfg.Scheduling.Storage, cfg.Scheduling.Location())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var store *backend
	switch cfg.Scheduling.Storage {
	case config.StorageMemory:
		store, err = newMemoryBackend(cfg, log)
	default:
		store, err = newPostgresBackend(cfg, metricsCollector, stopMetricsCh, log)
	}
	if err != nil {
		return err
	}
	defer store.close()

	// Redis кэш расписаний владельца
	if cfg.Redis.Enabled {
		if cfg.Scheduling.Storage == config.StorageMemory {
			log.Warn("Redis cache is ignored for memory storage")
		} else {
			redisClient, err := newRedisClient(cfg.Redis)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			var cacheRequests *prometheus.CounterVec
			if metricsCollector != nil {
				cacheRequests = metricsCollector.CacheRequests
			}
			store.schedules = cache.NewScheduleCache(
				store.schedules,
				redisClient,
				time.Duration(cfg.Redis.TTL)*time.Second,
				cacheRequests,
				cfg.Metrics.ServiceName,
				log,
			)
			log.Info("Schedule cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// Инициализируем use cases
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		store.schedules,
		store.appointments,
		store.owners,
		cfg.Scheduling.Location(),
		log,
	)
	makeAppointmentUseCase := makeAppointmentUC.NewUseCase(
		store.appointments,
		store.owners,
		getAvailableTimesUseCase,
		store.txManager,
		log,
	)

	// Инициализируем сервисы
	scheduleSvc := schedulesService.NewService(store.schedules, store.owners, store.txManager, log)
	appointmentSvc := appointmentsService.NewService(store.appointments, store.owners, store.txManager, log)
	companySvc := companiesService.NewService(store.owners, log)

	// Инициализируем handlers
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	getSchedules := getSchedulesHandler.NewHandler(scheduleSvc, log)
	addSchedule := addScheduleHandler.NewHandler(scheduleSvc, log)
	patchSchedule := patchScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	makeAppointment := makeAppointmentHandler.NewHandler(makeAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getCompany := getCompanyHandler.NewHandler(companySvc, log)
	patchServiceRules := patchServiceRulesHandler.NewHandler(companySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступное время ---
	api.HandleFunc("/companies/{companyId}/users/{userId}/available-times",
		getAvailableTimes.Handle).Methods(http.MethodGet)

	// --- Расписания ---
	api.HandleFunc("/companies/{companyId}/users/{userId}/schedules", getSchedules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedules", addSchedule.Handle).Methods(http.MethodPost)
	api.HandleFunc("/schedules/{scheduleId}", patchSchedule.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/schedules/{scheduleId}", deleteSchedule.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	api.HandleFunc("/appointments", makeAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// --- Правила обслуживания компании ---
	api.HandleFunc("/companies/{companyId}", getCompany.Handle).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyId}/service-rules", patchServiceRules.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

func newPostgresBackend(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*backend, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без коллектора обёртка просто проксирует запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)

	return &backend{
		schedules:    scheduleRepo.NewRepository(wrappedDB),
		appointments: appointmentRepo.NewRepository(wrappedDB),
		owners:       ownerRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			if err := wrappedDB.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func newMemoryBackend(cfg *config.Config, log *logger.Logger) (*backend, error) {
	store := memory.New()

	if cfg.Scheduling.SeedFile != "" {
		seed, err := memory.LoadSeedFile(cfg.Scheduling.SeedFile)
		if err != nil {
			return nil, err
		}
		if err := store.Apply(seed); err != nil {
			return nil, err
		}
		log.Info("Memory storage seeded from %s (companies=%d, users=%d)",
			cfg.Scheduling.SeedFile, len(seed.Companies), len(seed.Users))
	} else {
		log.Warn("Memory storage started without seed_file: no owners are registered")
	}

	return &backend{
		schedules:    store,
		appointments: store.Appointments(),
		owners:       store,
		txManager:    memory.NewTxManager(store),
		close:        func() {},
	}, nil
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}
