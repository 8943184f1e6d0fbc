// Package store owns the shared GORM + SQLite database handle used by both
// entity repositories.
package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/task-management/domain/task"
	"github.com/example/task-management/domain/teammember"
)

// Open connects to the SQLite database at path. Set DB_DEBUG=true to log
// generated SQL.
func Open(path string) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for both entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&teammember.TeamMember{}, &task.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// StoreModule manages the database lifecycle within the mono application.
type StoreModule struct {
	db   *gorm.DB
	path string
}

var _ mono.Module = (*StoreModule)(nil)
var _ mono.HealthCheckableModule = (*StoreModule)(nil)

// NewModule creates a store module around an open database handle.
func NewModule(db *gorm.DB, path string) *StoreModule {
	return &StoreModule{db: db, path: path}
}

// Name returns the module name.
func (m *StoreModule) Name() string {
	return "store"
}

// Health pings the underlying connection.
func (m *StoreModule) Health(ctx context.Context) mono.HealthStatus {
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.path,
		},
	}
}

// Start runs the schema migrations.
func (m *StoreModule) Start(_ context.Context) error {
	if err := Migrate(m.db); err != nil {
		return err
	}
	log.Printf("[store] Migrations applied (%s)", m.path)
	return nil
}

// Stop closes the database connection.
func (m *StoreModule) Stop(_ context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	log.Println("[store] Database connection closed")
	return nil
}
