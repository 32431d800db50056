package middleware

import (
	"net/http"
	"strings"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"golang.org/x/crypto/bcrypt"
)

// Actor names recorded in the audit log for HTTP callers.
const (
	AnonymousActor = "anonymous"
	APIKeyActor    = "api-key"
)

// APIKeyHeader is the alternative to an Authorization bearer token.
const APIKeyHeader = "X-API-Key"

// ActorMiddleware tags every request with an anonymous audit actor and its client host.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := domain.WithAuditActor(r.Context(), domain.AuditActor{
			Name: AnonymousActor,
			IP:   ClientHost(r),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// APIKeyMiddleware requires a key matching the bcrypt hash. An empty hash
// disables the check.
func APIKeyMiddleware(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := apiKey(r)
			if key == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := domain.WithAuditActor(r.Context(), domain.AuditActor{
				Name: APIKeyActor,
				IP:   ClientHost(r),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func apiKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
