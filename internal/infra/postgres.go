package infra

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"apnadoctor/internal/config"
	"apnadoctor/internal/models/db_models"
)

func InitPostgresql(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is not set")
	}

	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("connected to postgres")
	return connectionPool, nil
}

// Migrate creates or updates every table the API owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Account{},
		&db_models.LoginEvent{},
		&db_models.SymptomSession{},
		&db_models.ConsentRecord{},
		&db_models.Notification{},
		&db_models.ScheduledNotification{},
		&db_models.MedicalReport{},
	)
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("get database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("close database connection", zap.Error(err))
	} else {
		log.Info("postgres connection closed")
	}
}

// WithTransaction commits when fn returns nil and rolls back otherwise.
func WithTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit().Error
}
