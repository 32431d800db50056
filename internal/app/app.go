package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"sync"

	grpcadapter "github.com/lcalzada-xor/prr/internal/adapters/grpc"
	reportingAdapter "github.com/lcalzada-xor/prr/internal/adapters/reporting"
	"github.com/lcalzada-xor/prr/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/prr/internal/adapters/web/server"
	"github.com/lcalzada-xor/prr/internal/config"
	"github.com/lcalzada-xor/prr/internal/core/services/audit"
	"github.com/lcalzada-xor/prr/internal/core/services/codec"
	"github.com/lcalzada-xor/prr/internal/core/services/findings"
	"github.com/lcalzada-xor/prr/internal/core/services/reporting"
	"github.com/lcalzada-xor/prr/internal/core/services/scoring"
	"github.com/lcalzada-xor/prr/internal/core/services/session"
	"github.com/lcalzada-xor/prr/internal/telemetry"
)

// Version is reported by the tracer resource and the CLI.
const Version = "3.0.0"

// Application holds the core components of the application.
// It acts as the Facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config          *config.Config
	Store           *storage.SQLiteAdapter
	Scorer          *scoring.Engine
	Codec           *codec.Codec
	AuditService    *audit.AuditService
	SessionService  *session.Service
	FindingsService *findings.Service
	ReportGenerator *reporting.Generator
	WebServer       *webserver.Server
	GrpcServer      *grpcadapter.Server
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	// 1. Foundation & Infrastructure
	telemetry.InitMetrics()

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	app.Store = store

	// 2. Domain Services
	app.Scorer = scoring.NewEngine()
	app.Codec = codec.New()
	app.AuditService = audit.NewAuditService(store)
	app.SessionService = session.NewService(app.Scorer, app.Codec, store, app.AuditService)
	app.FindingsService = findings.NewService(store, app.Scorer, app.Codec, app.AuditService)
	app.ReportGenerator = reporting.NewGenerator(app.Scorer, app.Codec, app.AuditService)

	if err := app.SessionService.Restore(context.Background()); err != nil {
		log.Printf("Warning: session not restored: %v", err)
	}

	// 3. Servers
	app.WebServer = webserver.NewServer(app.Config, webserver.Services{
		Scorer:   app.Scorer,
		Codec:    app.Codec,
		Session:  app.SessionService,
		Findings: app.FindingsService,
		Reports:  app.ReportGenerator,
		Exporter: reportingAdapter.NewPDFExporter(),
		Audit:    app.AuditService,
	})
	app.SessionService.SetNotifier(app.WebServer.WSManager)

	if app.Config.GRPCPort == 0 {
		return nil
	}
	grpcServer, err := grpcadapter.NewServer(fmt.Sprintf(":%d", app.Config.GRPCPort), app.Scorer, app.Codec)
	if err != nil {
		return err
	}
	app.GrpcServer = grpcServer

	return nil
}

// Run starts the servers and blocks until ctx is done or one of them fails.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting PRR components...", "version", Version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	grpcAddr := "disabled"
	if srv := app.GrpcServer; srv != nil {
		grpcAddr = srv.Addr()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Serve(ctx); err != nil {
				errChan <- fmt.Errorf("grpc server error: %w", err)
			}
		}()
	}

	current := app.SessionService.Current()
	slog.Info("PRR Ready. Press Ctrl+C to terminate.",
		"http", app.Config.Addr,
		"grpc", grpcAddr,
		"band", current.Scores.OverallBand.String(),
	)

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case runErr = <-errChan:
	}

	cancel()
	wg.Wait()
	app.Close()
	return runErr
}

// Close releases storage and listeners. It is safe to call more than once.
func (app *Application) Close() {
	if app.GrpcServer != nil {
		app.GrpcServer.Close()
		app.GrpcServer = nil
	}
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
		app.Store = nil
	}
}
