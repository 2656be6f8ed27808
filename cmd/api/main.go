package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/config"
	v1 "github.com/dmehra2102/prod-golang-projects/carebook/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/notify"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/service"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/storage"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/viewcache"
	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Error("tracer init failed, continuing without tracing", zap.Error(err))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	// Prometheus metric names reject the hyphen in the app name.
	collector := metrics.NewCollector("carebook")

	var adminView service.AdminView = viewcache.Noop{}
	if cfg.Redis.Addr != "" {
		rdb, err := viewcache.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		adminView = viewcache.New(rdb, cfg.Redis.ViewTTL, log)
	} else {
		log.Warn("REDIS_ADDR not set, admin view caching disabled")
	}

	var sender notify.Sender = notify.NewNoopSender()
	if cfg.Notify.SMSWebhookURL != "" {
		sender = notify.NewWebhookSender(cfg.Notify.SMSWebhookURL, cfg.Notify.SMSWebhookToken)
	} else {
		log.Warn("SMS_WEBHOOK_URL not set, SMS notices disabled")
	}
	notifier := notify.NewService(sender, collector, log)

	appointmentRepo := storage.NewAppointmentRepository(db)
	patientRepo := storage.NewPatientRepository(db)

	appointmentSvc := service.NewAppointmentService(
		appointmentRepo, patientRepo, notifier, adminView, collector, cfg.Notify.BusinessName, log,
	)
	patientSvc := service.NewPatientService(patientRepo, collector, log)

	router := v1.NewRouter(v1.RouterDeps{
		Config:       cfg,
		Log:          log,
		Metrics:      collector,
		Appointments: v1.NewAppointmentHandler(appointmentSvc),
		Patients:     v1.NewPatientHandler(patientSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
