package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/lcalzada-xor/prr/internal/adapters/web"
	"github.com/lcalzada-xor/prr/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/prr/internal/config"
	"github.com/lcalzada-xor/prr/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Services are the core services the HTTP API exposes.
type Services struct {
	Scorer   ports.Scorer
	Codec    ports.ShareCodec
	Session  ports.SessionService
	Findings ports.FindingService
	Reports  ports.ReportService
	Exporter ports.ReportExporter
	Audit    ports.AuditService
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr           string
	APIKeyHash     string
	RateLimit      int
	AllowedOrigins []string

	WSManager       *web.WSManager
	CodecHandler    *handlers.CodecHandler
	SessionHandler  *handlers.SessionHandler
	FindingsHandler *handlers.FindingsHandler
	ReportHandler   *handlers.ReportHandler
	AuditHandler    *handlers.AuditHandler
	srv             *http.Server
}

// NewServer creates a new web server.
func NewServer(cfg *config.Config, svc Services) *Server {
	return &Server{
		Addr:           cfg.Addr,
		APIKeyHash:     cfg.APIKeyHash,
		RateLimit:      cfg.RateLimit,
		AllowedOrigins: cfg.AllowedOrigins,

		WSManager:       web.NewWSManager(svc.Session, cfg.AllowedOrigins),
		CodecHandler:    handlers.NewCodecHandler(svc.Scorer, svc.Codec),
		SessionHandler:  handlers.NewSessionHandler(svc.Session),
		FindingsHandler: handlers.NewFindingsHandler(svc.Findings),
		ReportHandler:   handlers.NewReportHandler(svc.Session, svc.Codec, svc.Reports, svc.Exporter),
		AuditHandler:    handlers.NewAuditHandler(svc.Audit),
	}
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(ctx, s)

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           otelhttp.NewHandler(handler, "prr-server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
