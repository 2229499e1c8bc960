package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"travelapp-backend/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.JWTAccessTTL != 5*time.Minute || cfg.JWTRefreshTTL != 24*time.Hour {
		t.Fatalf("unexpected token lifetimes %v / %v", cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("expected page size 10, got %d", cfg.PageSize)
	}
	if cfg.TwilioEnabled() {
		t.Fatalf("expected twilio disabled without credentials")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected missing JWT_SECRET to fail")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatalf("expected unsupported driver to fail")
	}
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestNewLoggerHonoursLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "json")
	logger.Info("hidden")
	logger.Warn("shown", "event", "test")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info line to be filtered: %s", out)
	}
	if !strings.Contains(out, `"event":"test"`) {
		t.Fatalf("expected json output, got %s", out)
	}
}

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := ConnectDB(Config{DBDriver: "sqlite", DBURL: "file::memory:"}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range []string{"users", "reservations", "tours", "tour_reservations", "refresh_tokens", "reminder_logs"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %s", table)
		}
	}
}

func TestDatabaseLogsThroughSlogWithoutMissingRows(t *testing.T) {
	var buf bytes.Buffer
	db, err := ConnectDB(Config{DBDriver: "sqlite", DBURL: "file::memory:"}, newLogger(&buf, "info", "json"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	buf.Reset()

	var user models.User
	if err := db.First(&user, 42).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if strings.Contains(buf.String(), "record not found") {
		t.Fatalf("expected missing rows to stay out of the log, got %s", buf.String())
	}

	if err := db.Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatalf("expected a query error")
	}
	out := buf.String()
	if !strings.Contains(out, `"module":"gorm"`) || !strings.Contains(out, "no_such_table") {
		t.Fatalf("expected the failed query as a json slog line, got %s", out)
	}
}
