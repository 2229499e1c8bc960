package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment after the
// optional .env file has been loaded.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"`
	DBURL    string `env:"DB_URL"`

	JWTSecret       string        `env:"JWT_SECRET,notEmpty"`
	JWTAccessTTL    time.Duration `env:"JWT_ACCESS_TTL" envDefault:"5m"`
	JWTRefreshTTL   time.Duration `env:"JWT_REFRESH_TTL" envDefault:"24h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"12"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	PageSize        int           `env:"PAGE_SIZE" envDefault:"10"`
	ReminderSpec    string        `env:"REMINDER_SCHEDULE" envDefault:"0 9 * * *"`
	TokenPurgeSpec  string        `env:"TOKEN_PURGE_SCHEDULE" envDefault:"@hourly"`
	TwilioSID       string        `env:"TWILIO_ACCOUNT_SID"`
	TwilioToken     string        `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromPhone string        `env:"TWILIO_PHONE_NUMBER"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBURL == "" && cfg.DBDriver == "postgres" {
		return Config{}, fmt.Errorf("DB_URL is required for postgres")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return cfg, nil
}

// TwilioEnabled reports whether SMS reminders can be delivered.
func (c Config) TwilioEnabled() bool {
	return c.TwilioSID != "" && c.TwilioToken != "" && c.TwilioFromPhone != ""
}
