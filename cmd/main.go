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

	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	createInvoiceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_invoice"
	deleteAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointments"
	getInvoiceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_invoice"
	getInvoicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_invoices"
	setAppointmentStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/set_appointment_status"
	updateAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	invoiceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/invoice"
	serviceOfferingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/serviceoffering"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
	nagerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/nager"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	invoicesService "github.com/m04kA/SMC-AppointmentService/internal/service/invoices"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	createInvoiceUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_invoice"
	updateAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")
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

	// Кеш праздников: Redis либо in-memory фолбэк
	var holidayCache nagerClient.Cache
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
		holidayCache = cache.NewRedisHolidayCache(redisClient)
		log.Info("Holiday cache: redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		holidayCache = cache.NewMemoryHolidayCache()
		log.Info("Holiday cache: in-memory")
	}

	// Клиент Nager.Date для государственных праздников
	holidayTTL := nagerClient.DefaultCacheTTL
	if cfg.Holidays.CacheTTLHours > 0 {
		holidayTTL = time.Duration(cfg.Holidays.CacheTTLHours) * time.Hour
	}
	holidayClient := nagerClient.NewClient(
		cfg.Holidays.BaseURL,
		time.Duration(cfg.Holidays.Timeout)*time.Second,
		holidayCache,
		holidayTTL,
		log,
	)
	log.Info("Holiday client initialized (base=%s timeout=%ds, cache TTL=%s)",
		cfg.Holidays.BaseURL, cfg.Holidays.Timeout, holidayTTL)

	// Почтовые уведомления: SMTP либо no-op заглушка
	var mailSender createAppointmentUC.MailSender
	if cfg.SMTP.Enabled {
		mailSender = mailer.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, nil)
		log.Info("Mail sender: smtp (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		mailSender = mailer.NewNoopSender(log)
		log.Info("Mail sender: disabled (noop)")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository     *appointmentRepo.Repository
		invoiceRepository         *invoiceRepo.Repository
		businessRepository        *businessRepo.Repository
		customerRepository        *customerRepo.Repository
		serviceOfferingRepository *serviceOfferingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		invoiceRepository = invoiceRepo.NewRepository(wrappedDB)
		businessRepository = businessRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		serviceOfferingRepository = serviceOfferingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		invoiceRepository = invoiceRepo.NewRepository(db)
		businessRepository = businessRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		serviceOfferingRepository = serviceOfferingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	invoicesSvc := invoicesService.NewService(invoiceRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		businessRepository,
		customerRepository,
		serviceOfferingRepository,
		holidayClient,
		mailSender,
		txMgr,
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		businessRepository,
		serviceOfferingRepository,
		holidayClient,
		txMgr,
		log,
	)

	createInvoiceUseCase := createInvoiceUC.NewUseCase(
		invoiceRepository,
		appointmentRepository,
		businessRepository,
		customerRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	setAppointmentStatus := setAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	createInvoice := createInvoiceHandler.NewHandler(createInvoiceUseCase, log)
	getInvoice := getInvoiceHandler.NewHandler(invoicesSvc, log)
	getInvoices := getInvoicesHandler.NewHandler(invoicesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без тенанта)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Tenant(log))

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Список записей тенанта (фильтры: customer_id | start_date+end_date | status)
	protected.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Обновление записи
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)

	// Удаление записи
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", setAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Счета ---
	// Выставление счёта по записи
	protected.HandleFunc("/appointments/{appointmentId}/invoice", createInvoice.Handle).Methods(http.MethodPost)

	// Список счетов тенанта
	protected.HandleFunc("/invoices", getInvoices.Handle).Methods(http.MethodGet)

	// Получение счёта по ID
	protected.HandleFunc("/invoices/{invoiceId}", getInvoice.Handle).Methods(http.MethodGet)

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
