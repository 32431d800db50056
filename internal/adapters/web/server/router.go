package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/prr/internal/adapters/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes builds the router. The decode rate limiter lives as long as ctx.
func SetupRoutes(ctx context.Context, s *Server) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.ActorMiddleware)

	// decode, apply and save share one budget per client
	decodeLimiter := middleware.NewRateLimiter(ctx, s.RateLimit, time.Minute)
	limited := func(h http.Handler) http.Handler {
		return middleware.RateLimitMiddleware(decodeLimiter)(h)
	}

	requireKey := middleware.APIKeyMiddleware(s.APIKeyHash)
	protect := func(h http.HandlerFunc) http.Handler {
		return requireKey(h)
	}

	// API routes sit on the root router so a wrong method yields 405, not 404.
	// Stateless
	r.HandleFunc("/api/score", s.CodecHandler.HandleScore).Methods(http.MethodPost)
	r.HandleFunc("/api/encode", s.CodecHandler.HandleEncode).Methods(http.MethodPost)
	r.Handle("/api/decode", limited(http.HandlerFunc(s.CodecHandler.HandleDecode))).Methods(http.MethodPost)

	// Session
	r.HandleFunc("/api/session", s.SessionHandler.HandleGet).Methods(http.MethodGet)
	r.Handle("/api/session", protect(s.SessionHandler.HandleUpdate)).Methods(http.MethodPut)
	r.Handle("/api/session/apply", limited(protect(s.SessionHandler.HandleApply))).Methods(http.MethodPost)
	r.Handle("/api/session/reset", protect(s.SessionHandler.HandleReset)).Methods(http.MethodPost)

	// Findings register
	r.HandleFunc("/api/findings", s.FindingsHandler.HandleList).Methods(http.MethodGet)
	r.Handle("/api/findings", limited(protect(s.FindingsHandler.HandleSave))).Methods(http.MethodPost)
	r.HandleFunc("/api/findings/{id}", s.FindingsHandler.HandleGet).Methods(http.MethodGet)

	// Reports and audit
	r.HandleFunc("/api/report", s.ReportHandler.HandleGenerateReport).Methods(http.MethodGet)
	r.Handle("/api/audit-logs", protect(s.AuditHandler.HandleGetLogs)).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.WSManager.HandleWebSocket).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	return r
}
