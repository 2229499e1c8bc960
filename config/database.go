package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"travelapp-backend/models"
)

// ConnectDB opens the configured database and verifies it answers. gorm logs
// through log, or slog.Default when log is nil; missing rows are not logged.
func ConnectDB(cfg Config, log *slog.Logger) (*gorm.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dsn := cfg.DBURL
		if dsn == "" {
			dsn = "file:travelapp.db?_pragma=foreign_keys(1)"
		}
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(cfg.DBURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql db handle: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// one writer; also keeps a :memory: database on a single connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Reservation{},
		&models.Tour{},
		&models.TourReservation{},
		&models.RefreshToken{},
		&models.ReminderLog{},
	)
}

func newGormLogger(log *slog.Logger) logger.Interface {
	return logger.NewSlogLogger(log.With("module", "gorm", "layer", "storage"), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
