package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lcalzada-xor/prr/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// Ensure compliance
var _ ports.Storage = (*SQLiteAdapter)(nil)

// SQLiteAdapter implements ports.Storage using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// SessionStateModel is a key/value row holding serialized session state.
type SessionStateModel struct {
	Key       string `gorm:"primaryKey;column:state_key"`
	Data      []byte
	UpdatedAt time.Time
}

// AuditLogModel is the GORM model for audit entries.
type AuditLogModel struct {
	ID        uint      `gorm:"primaryKey"`
	Actor     string    `gorm:"index"`
	Action    string    `gorm:"index"`
	Target    string
	Details   string
	IPAddress string
	Timestamp time.Time `gorm:"index"`
}

// FindingModel is the GORM model for the findings register.
type FindingModel struct {
	ID         string `gorm:"primaryKey"`
	FindingRef string `gorm:"index"`
	Code       string
	Shared     string
	Likelihood uint8
	Impact     uint8
	Band       uint8 `gorm:"index"`
	CreatedAt  time.Time
}

// NewSQLiteAdapter opens (creating if needed) the database file and migrates the schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return newAdapter(db)
}

func newAdapter(db *gorm.DB) (*SQLiteAdapter, error) {
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		log.Printf("Storage: tracing plugin disabled: %v", err)
	}

	// Auto Migrate
	if err := db.AutoMigrate(&SessionStateModel{}, &AuditLogModel{}, &FindingModel{}); err != nil {
		return nil, err
	}
	return &SQLiteAdapter{db: db}, nil
}

// Close closes the storage connection.
func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
