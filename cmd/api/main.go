package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/config"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/repository/gormrepo"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/service"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/tracer"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("api exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}
	if cfg.App.SeedDemoData {
		if err := database.SeedDemoData(db, log); err != nil {
			return err
		}
	}

	collector := metrics.NewCollector("vetflow")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	accounts := gormrepo.NewAccountRepository(db)
	appts := gormrepo.NewAppointmentRepository(db)
	pets := gormrepo.NewPetRepository(db)
	doctors := gormrepo.NewDoctorRepository(db)
	consults := gormrepo.NewConsultationRepository(db)
	bills := gormrepo.NewBillRepository(db)
	auditRepo := gormrepo.NewAuditRepository(db)
	txRunner := gormrepo.NewTxRunner(db)

	auditSvc := service.NewAuditService(auditRepo, log)
	defer auditSvc.Shutdown()

	deps := v1.RouterDeps{
		Config:     cfg,
		Log:        log,
		JWTManager: jwtManager,
		Collector:  collector,
		Auth:       service.NewAuthService(accounts, jwtManager, auditSvc, log),
		Scheduling: service.NewSchedulingService(appts, pets, doctors, consults, bills, txRunner, auditSvc, log),
		Billing:    service.NewBillingService(bills, consults, appts, pets, auditSvc, log),
		Pets:       service.NewPetService(pets, auditSvc, log),
		Doctors:    service.NewDoctorService(doctors, auditSvc, log),
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      v1.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("shutdown complete")
	return nil
}
