package storage

import (
	"context"
	"errors"
	"time"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadState returns the data stored under key.
func (a *SQLiteAdapter) LoadState(ctx context.Context, key string) ([]byte, error) {
	var m SessionStateModel
	if err := a.db.WithContext(ctx).First(&m, "state_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return m.Data, nil
}

// SaveState upserts the data under key.
func (a *SQLiteAdapter) SaveState(ctx context.Context, key string, data []byte) error {
	m := SessionStateModel{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		UpdateAll: true,
	}).Create(&m).Error
}

// DeleteState removes key. Deleting a missing key is not an error.
func (a *SQLiteAdapter) DeleteState(ctx context.Context, key string) error {
	return a.db.WithContext(ctx).Delete(&SessionStateModel{}, "state_key = ?", key).Error
}
