package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/types"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens Postgres when POSTGRES_HOST is configured and falls back to a
// local SQLite file otherwise, so the service runs without any infrastructure
// in development.
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	host := utils.GetEnv("POSTGRES_HOST", "", log)
	var (
		conn *gorm.DB
		err  error
	)
	if host != "" {
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "mindspark", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

		serviceLog.Info("Connecting to Postgres...")
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			serviceLog.Error("Failed to connect to Postgres", "error", err)
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
	} else {
		path := utils.GetEnv("SQLITE_PATH", "mindspark.db", log)
		serviceLog.Info("No POSTGRES_HOST set, using SQLite", "path", path)
		conn, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			serviceLog.Error("Failed to open SQLite", "error", err)
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	}

	return &Service{db: conn, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := s.db.AutoMigrate(
		&types.User{},
		&types.PlayEvent{},
	); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
