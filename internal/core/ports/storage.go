package ports

import (
	"context"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// SessionStore is a small key/value store for serialized session state.
type SessionStore interface {
	// LoadState returns domain.ErrSessionNotFound when nothing is stored under key.
	LoadState(ctx context.Context, key string) ([]byte, error)
	SaveState(ctx context.Context, key string, data []byte) error
	DeleteState(ctx context.Context, key string) error
}

// FindingRepository persists the findings register.
type FindingRepository interface {
	SaveFinding(ctx context.Context, f domain.FindingEntry) error
	// GetFinding returns domain.ErrFindingNotFound for unknown ids.
	GetFinding(ctx context.Context, id string) (*domain.FindingEntry, error)
	ListFindings(ctx context.Context, limit int) ([]domain.FindingEntry, error)
}

// Storage is the full persistence backend.
type Storage interface {
	SessionStore
	FindingRepository
	AuditRepository

	// Close closes the storage connection.
	Close() error
}
