package storage

import (
	"context"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

func (a *SQLiteAdapter) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	m := AuditLogModel{
		Actor:     log.Actor,
		Action:    string(log.Action),
		Target:    log.Target,
		Details:   log.Details,
		IPAddress: log.IPAddress,
		Timestamp: log.Timestamp,
	}
	return a.db.WithContext(ctx).Create(&m).Error
}

func (a *SQLiteAdapter) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	var models []AuditLogModel
	if err := a.db.WithContext(ctx).Order("timestamp desc, id desc").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	logs := make([]domain.AuditLog, len(models))
	for i, m := range models {
		logs[i] = domain.AuditLog{
			ID:        m.ID,
			Actor:     m.Actor,
			Action:    domain.AuditAction(m.Action),
			Target:    m.Target,
			Details:   m.Details,
			IPAddress: m.IPAddress,
			Timestamp: m.Timestamp,
		}
	}
	return logs, nil
}
