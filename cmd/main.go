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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/holistia/booking-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/holistia/booking-service/internal/api/handlers/create_appointment"
	enrollClassHandler "github.com/holistia/booking-service/internal/api/handlers/enroll_class"
	getAgendaHandler "github.com/holistia/booking-service/internal/api/handlers/get_agenda"
	getAppointmentHandler "github.com/holistia/booking-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/holistia/booking-service/internal/api/handlers/get_available_slots"
	getClassesHandler "github.com/holistia/booking-service/internal/api/handlers/get_classes"
	getCreditLedgerHandler "github.com/holistia/booking-service/internal/api/handlers/get_credit_ledger"
	getPatientAppointmentsHandler "github.com/holistia/booking-service/internal/api/handlers/get_patient_appointments"
	getRulesHandler "github.com/holistia/booking-service/internal/api/handlers/get_rules"
	grantWelcomeBonusHandler "github.com/holistia/booking-service/internal/api/handlers/grant_welcome_bonus"
	purchasePackageHandler "github.com/holistia/booking-service/internal/api/handlers/purchase_package"
	rescheduleAppointmentHandler "github.com/holistia/booking-service/internal/api/handlers/reschedule_appointment"
	scheduleClassHandler "github.com/holistia/booking-service/internal/api/handlers/schedule_class"
	updateStatusHandler "github.com/holistia/booking-service/internal/api/handlers/update_appointment_status"
	"github.com/holistia/booking-service/internal/api/middleware"
	"github.com/holistia/booking-service/internal/config"
	appointmentRepo "github.com/holistia/booking-service/internal/infra/storage/appointment"
	classSessionRepo "github.com/holistia/booking-service/internal/infra/storage/classsession"
	creditRepo "github.com/holistia/booking-service/internal/infra/storage/credit"
	packagePurchaseRepo "github.com/holistia/booking-service/internal/infra/storage/packagepurchase"
	notifyClient "github.com/holistia/booking-service/internal/integrations/notify"
	profilesClient "github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/rules"
	appointmentsService "github.com/holistia/booking-service/internal/service/appointments"
	classesService "github.com/holistia/booking-service/internal/service/classes"
	creditsService "github.com/holistia/booking-service/internal/service/credits"
	remindersService "github.com/holistia/booking-service/internal/service/reminders"
	cancelAppointmentUC "github.com/holistia/booking-service/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/holistia/booking-service/internal/usecase/create_appointment"
	enrollClassUC "github.com/holistia/booking-service/internal/usecase/enroll_class"
	getAvailableSlotsUC "github.com/holistia/booking-service/internal/usecase/get_available_slots"
	purchasePackageUC "github.com/holistia/booking-service/internal/usecase/purchase_package"
	rescheduleAppointmentUC "github.com/holistia/booking-service/internal/usecase/reschedule_appointment"
	scheduleClassUC "github.com/holistia/booking-service/internal/usecase/schedule_class"
	"github.com/holistia/booking-service/pkg/logger"
	"github.com/holistia/booking-service/pkg/metrics"
	"github.com/holistia/booking-service/pkg/txmanager"
)

func main() {
	// .env is optional; the container supplies the environment in production.
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-service...")

	// The rule tables are validated once here; a broken policy table must
	// never reach request handling.
	ruleSet, err := rules.Load()
	if err != nil {
		log.Fatal("Failed to load business rules: %v", err)
	}
	log.Info("Business rules loaded and validated")

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	profiles := profilesClient.NewClient(
		cfg.ProfilesService.URL,
		time.Duration(cfg.ProfilesService.Timeout)*time.Second,
		log,
	)
	notify := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Profiles=%s, Notify=%s)",
		cfg.ProfilesService.URL, cfg.NotifyService.URL)

	appointments := appointmentRepo.NewRepository(db)
	classSessions := classSessionRepo.NewRepository(db)
	credits := creditRepo.NewRepository(db)
	packagePurchases := packagePurchaseRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Use cases that record domain metrics fall back to no-op recorders when
	// metrics are disabled.
	var (
		createMetrics   createAppointmentUC.Metrics     = createAppointmentUC.NopMetrics{}
		cancelMetrics   cancelAppointmentUC.Metrics     = cancelAppointmentUC.NopMetrics{}
		moveMetrics     rescheduleAppointmentUC.Metrics = rescheduleAppointmentUC.NopMetrics{}
		scheduleMetrics scheduleClassUC.Metrics         = scheduleClassUC.NopMetrics{}
	)
	if cfg.Metrics.Enabled {
		createMetrics = metricsCollector
		cancelMetrics = metricsCollector
		moveMetrics = metricsCollector
		scheduleMetrics = metricsCollector
	}

	createAppointment := createAppointmentUC.NewUseCase(
		appointments, classSessions, profiles, txMgr, ruleSet, createMetrics, log)
	cancelAppointment := cancelAppointmentUC.NewUseCase(
		appointments, credits, profiles, txMgr, ruleSet, cancelMetrics, log)
	rescheduleAppointment := rescheduleAppointmentUC.NewUseCase(
		appointments, classSessions, profiles, txMgr, ruleSet, moveMetrics, log)
	getAvailableSlots := getAvailableSlotsUC.NewUseCase(
		appointments, classSessions, profiles, ruleSet, log)
	scheduleClass := scheduleClassUC.NewUseCase(
		classSessions, appointments, profiles, txMgr, ruleSet, scheduleMetrics, log)
	enrollClass := enrollClassUC.NewUseCase(
		classSessions, packagePurchases, txMgr, ruleSet, log)
	purchasePackage := purchasePackageUC.NewUseCase(
		packagePurchases, credits, txMgr, ruleSet, log)

	appointmentsSvc := appointmentsService.NewService(appointments, profiles, log)
	creditsSvc := creditsService.NewService(credits, ruleSet, log)
	classesSvc := classesService.NewService(classSessions, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/rules",
		getRulesHandler.NewHandler(ruleSet, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlotsHandler.NewHandler(getAvailableSlots, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/classes",
		getClassesHandler.NewHandler(classesSvc, log).Handle).Methods(http.MethodGet)

	// Protected routes require the X-User-ID header.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments",
		createAppointmentHandler.NewHandler(createAppointment, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}",
		getAppointmentHandler.NewHandler(appointmentsSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}",
		rescheduleAppointmentHandler.NewHandler(rescheduleAppointment, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel",
		cancelAppointmentHandler.NewHandler(cancelAppointment, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status",
		updateStatusHandler.NewHandler(appointmentsSvc, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/agenda",
		getAgendaHandler.NewHandler(appointmentsSvc, log).Handle).Methods(http.MethodGet)

	protected.HandleFunc("/patients/{patientId}/appointments",
		getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId}/credits",
		getCreditLedgerHandler.NewHandler(creditsSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId}/credits/welcome",
		grantWelcomeBonusHandler.NewHandler(creditsSvc, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{patientId}/packages",
		purchasePackageHandler.NewHandler(purchasePackage, log).Handle).Methods(http.MethodPost)

	protected.HandleFunc("/classes",
		scheduleClassHandler.NewHandler(scheduleClass, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/classes/{sessionId}/enrollments",
		enrollClassHandler.NewHandler(enrollClass, log).Handle).Methods(http.MethodPost)

	// Reminder sweeper.
	remindersCtx, stopReminders := context.WithCancel(context.Background())
	defer stopReminders()
	if cfg.Reminders.Enabled {
		sweeper := remindersService.NewService(
			appointments, notify, ruleSet,
			time.Duration(cfg.Reminders.IntervalSeconds)*time.Second, log)
		go sweeper.Run(remindersCtx)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopReminders()

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
