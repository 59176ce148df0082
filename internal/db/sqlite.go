package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/types"
	"github.com/pathforge/pathforge-backend/internal/utils"
)

// SQLiteService backs local development and tests without a Postgres
// instance. Selected with DB_DRIVER=sqlite.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(log *logger.Logger) (*SQLiteService, error) {
	serviceLog := log.With("service", "SQLiteService")

	path := utils.GetEnv("SQLITE_PATH", "pathforge.db", log)

	log.Info("Opening SQLite database...", "path", path)
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to open SQLite database", "error", err)
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteService{db: gdb, log: serviceLog}, nil
}

func (s *SQLiteService) AutoMigrateAll() error {
	s.log.Info("Auto migrating sqlite tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Roadmap{},
		&types.Milestone{},
		&types.UserProgress{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for sqlite tables", "error", err)
		return err
	}
	return nil
}

func (s *SQLiteService) DB() *gorm.DB {
	return s.db
}
