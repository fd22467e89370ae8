package database

import (
	"fmt"
	"time"

	"github.com/stitchdesk/crm/internal/config"
	"github.com/stitchdesk/crm/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	case config.DriverPostgres, "":
		dialector = postgres.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(cfg, log),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())
	if cfg.Driver == config.DriverSQLite && cfg.Path == ":memory:" {
		// every pooled connection would otherwise get its own empty database,
		// and closing the last one drops it
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func newGormLogger(cfg *config.DatabaseConfig, log *zap.Logger) logger.Interface {
	if !cfg.LogQueries || log == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  logger.Info,
		IgnoreRecordNotFoundError: true,
	})
}

// Models lists every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.Company{},
		&domain.User{},
		&domain.UserSettings{},
		&domain.Session{},
		&domain.Key{},
		&domain.SalesRep{},
		&domain.ColorSettings{},
		&domain.Client{},
		&domain.ClientSalesRepCompany{},
		&domain.ClientAddress{},
		&domain.ClientEmail{},
		&domain.ClientPhone{},
		&domain.Vendor{},
		&domain.PurchaseOrder{},
		&domain.Job{},
		&domain.GmailMsg{},
	}
}

// AutoMigrate runs automatic migrations (for development only)
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	// At most one open assignment per client. Partial indexes work on both
	// postgres and sqlite.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_client_sales_rep_companies_active " +
			"ON client_sales_rep_companies (client_id) WHERE is_active",
	).Error
}
