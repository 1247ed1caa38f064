package database

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide handle. Connect is idempotent; the first successful
// call wins and later calls are no-ops.
var (
	DB       *gorm.DB
	initOnce sync.Once
)

func Connect(cfg *config.Config, collector *QueryMetrics) error {
	var err error
	initOnce.Do(func() {
		err = connect(cfg, collector)
	})
	return err
}

func connect(cfg *config.Config, collector *QueryMetrics) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBPoolMax)
	sqlDB.SetMaxIdleConns(cfg.DBPoolMin)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(cfg.DBIdleTimeout)

	if collector != nil {
		if err := DB.Use(collector); err != nil {
			return fmt.Errorf("failed to install query metrics: %w", err)
		}
	}

	slog.Info("database connected", "pool_max", cfg.DBPoolMax)
	return nil
}

// Migrate runs AutoMigrate over the direct (non-pooled) URL. PgBouncer in
// transaction mode cannot run DDL, so migrations get their own connection.
func Migrate(cfg *config.Config) error {
	migrateDB, err := gorm.Open(postgres.Open(cfg.DirectDatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect for migration: %w", err)
	}

	err = migrateDB.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.UserSettings{},
		&models.Idea{},
		&models.GeneratedContent{},
		&models.PerformanceData{},
		&models.UserAnalytics{},
		&models.Template{},
		&models.Team{},
		&models.TeamMember{},
		&models.SystemLog{},
	)
	if err != nil {
		return err
	}

	if sqlDB, dbErr := migrateDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
