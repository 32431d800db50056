package storage

import (
	"context"
	"errors"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"gorm.io/gorm"
)

func (a *SQLiteAdapter) SaveFinding(ctx context.Context, f domain.FindingEntry) error {
	m := toFindingModel(f)
	return a.db.WithContext(ctx).Save(&m).Error
}

func (a *SQLiteAdapter) GetFinding(ctx context.Context, id string) (*domain.FindingEntry, error) {
	var m FindingModel
	if err := a.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFindingNotFound
		}
		return nil, err
	}
	f := toFindingDomain(m)
	return &f, nil
}

// ListFindings returns the newest entries first.
func (a *SQLiteAdapter) ListFindings(ctx context.Context, limit int) ([]domain.FindingEntry, error) {
	var models []FindingModel
	if err := a.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.FindingEntry, len(models))
	for i, m := range models {
		out[i] = toFindingDomain(m)
	}
	return out, nil
}

func toFindingModel(f domain.FindingEntry) FindingModel {
	return FindingModel{
		ID:         f.ID,
		FindingRef: f.FindingRef,
		Code:       f.Code,
		Shared:     f.Shared,
		Likelihood: uint8(f.Likelihood),
		Impact:     uint8(f.Impact),
		Band:       uint8(f.Band),
		CreatedAt:  f.CreatedAt,
	}
}

func toFindingDomain(m FindingModel) domain.FindingEntry {
	return domain.FindingEntry{
		ID:         m.ID,
		FindingRef: m.FindingRef,
		Code:       m.Code,
		Shared:     m.Shared,
		Likelihood: domain.Level(m.Likelihood),
		Impact:     domain.Level(m.Impact),
		Band:       domain.Band(m.Band),
		CreatedAt:  m.CreatedAt,
	}
}
