package database

import (
	"fmt"

	"jobmatch_backend/internal/config"
	"jobmatch_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens the GORM connection using the configured DSN. The
// connection is cached for subsequent calls.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate enables the required Postgres extensions and migrates all
// models. uuid-ossp backs the uuid primary key defaults, vector backs
// the job embedding column.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
		return fmt.Errorf("failed to enable vector extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.StudentProfile{},
		&models.EmployerProfile{},
		&models.Job{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// The embedding column is deliberately absent from the Job model (GORM
	// would serialize the zero vector as '[]', which vector(384) rejects);
	// internal/vectorindex owns all reads and writes of it.
	if err := db.Exec(`ALTER TABLE jobs ADD COLUMN IF NOT EXISTS embedding vector(384)`).Error; err != nil {
		return fmt.Errorf("failed to add embedding column: %w", err)
	}

	// ivfflat needs rows to build useful lists; created lazily here so a
	// fresh database still boots.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_jobs_embedding ON jobs USING ivfflat (embedding vector_cosine_ops)`).Error; err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}

	return nil
}
