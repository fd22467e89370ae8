package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the settings shared by the migrate and worker commands
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Jobs     JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	Path            string // sqlite file, or ":memory:"
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	LogQueries      bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

// JobsConfig holds the background job schedule
type JobsConfig struct {
	// IntegrityAuditEnabled toggles the relational integrity sweep
	IntegrityAuditEnabled bool
	// IntegrityAuditSchedule is a cron expression with a seconds field
	IntegrityAuditSchedule string
	// IntegrityAuditTimeout bounds one sweep (seconds)
	IntegrityAuditTimeout int
}

// ConnectionString is the lib/pq keyword/value DSN for the postgres driver
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

func (j *JobsConfig) IntegrityAuditTimeoutDuration() time.Duration {
	return time.Duration(j.IntegrityAuditTimeout) * time.Second
}

// Load reads config.json from the working directory or ./config, then
// applies a .env file and the process environment on top. DATABASE_DRIVER
// overrides database.driver.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Jobs.IntegrityAuditEnabled && c.Jobs.IntegrityAuditSchedule == "" {
		return fmt.Errorf("jobs.integrityAuditSchedule is required when the integrity audit is enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Stitchdesk CRM")
	v.SetDefault("app.environment", "development")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "stitchdesk")
	v.SetDefault("database.user", "stitchdesk")
	v.SetDefault("database.password", "stitchdesk")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.path", "stitchdesk.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.logQueries", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("jobs.integrityAuditEnabled", true)
	v.SetDefault("jobs.integrityAuditSchedule", "0 15 3 * * *") // 03:15 every day
	v.SetDefault("jobs.integrityAuditTimeout", 600)              // 10 minutes
}
