package audit

import (
	"context"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/ports"
)

type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log records an action on behalf of the actor carried by ctx.
func (s *AuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	actor := domain.AuditActorFromContext(ctx)

	// Use Domain Factory to ensure business rules
	entry, err := domain.NewAuditLog(actor.Name, action, target, details, actor.IP)
	if err != nil {
		return err
	}

	return s.repo.SaveAuditLog(ctx, *entry)
}

func (s *AuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListAuditLogs(ctx, limit)
}
