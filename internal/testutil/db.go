package testutil

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stitchdesk/crm/internal/config"
	"github.com/stitchdesk/crm/internal/database"
	"github.com/stitchdesk/crm/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupTestDB opens a migrated in-memory SQLite database that is closed when
// the test ends
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop())
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetupPostgresTestDB connects to the PostgreSQL database named by the
// DATABASE_* environment variables and skips the test when DATABASE_HOST is
// unset. Row locks are only exercised here.
func SetupPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	host := os.Getenv("DATABASE_HOST")
	if host == "" {
		t.Skip("DATABASE_HOST not set, skipping PostgreSQL test")
	}
	port, _ := strconv.Atoi(getEnvOrDefault("DATABASE_PORT", "5432"))

	db, err := database.NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		Host:         host,
		Port:         port,
		Name:         getEnvOrDefault("DATABASE_NAME", "stitchdesk"),
		User:         getEnvOrDefault("DATABASE_USER", "stitchdesk"),
		Password:     getEnvOrDefault("DATABASE_PASSWORD", "stitchdesk"),
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}, zap.NewNop())
	require.NoError(t, err, "failed to connect to test database. Ensure PostgreSQL is running.")
	require.NoError(t, database.AutoMigrate(db))
	return db
}

var seq atomic.Int64

// unique returns a short suffix unique within the test binary
func unique() string {
	return strconv.FormatInt(seq.Add(1), 36)
}

// CreateTestCompany inserts a company and returns it
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *domain.Company {
	t.Helper()
	company := domain.CompanyOptionalDefaults{Name: name}.WithDefaults(time.Now().UTC())
	require.NoError(t, db.Create(&company).Error)
	return &company
}

// CreateTestSalesRep inserts a user and a sales rep employed by companyID
func CreateTestSalesRep(t *testing.T, db *gorm.DB, username string, companyID int) *domain.SalesRep {
	t.Helper()
	now := time.Now().UTC()

	user := domain.User{ID: fmt.Sprintf("user-%s", unique()), Username: username, Role: domain.UserRolesUser}
	require.NoError(t, db.Create(&user).Error)

	rep := domain.SalesRep{
		Username:  username,
		Name:      "Rep " + username,
		Email:     username + "@example.com",
		CompanyID: companyID,
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&rep).Error)
	return &rep
}

// CreateTestClient inserts a client together with its active assignment
func CreateTestClient(t *testing.T, db *gorm.DB, name string, rep *domain.SalesRep) *domain.Client {
	t.Helper()
	now := time.Now().UTC()

	client := domain.ClientOptionalDefaults{
		Name:             name,
		CompanyName:      name + " Inc",
		CompanyID:        rep.CompanyID,
		SalesRepUsername: rep.Username,
	}.WithDefaults(now)
	require.NoError(t, db.Create(&client).Error)

	assignment := domain.ClientSalesRepCompany{
		ClientID:         client.ID,
		SalesRepUsername: rep.Username,
		CompanyID:        rep.CompanyID,
		FromDate:         now,
		IsActive:         true,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return &client
}

// CreateTestVendor inserts an active vendor
func CreateTestVendor(t *testing.T, db *gorm.DB, name string) *domain.Vendor {
	t.Helper()
	vendor := domain.VendorOptionalDefaults{
		Name:       name,
		Email:      fmt.Sprintf("vendor-%s@example.com", unique()),
		Department: domain.DepartmentDigitizing,
	}.WithDefaults(time.Now().UTC())
	require.NoError(t, db.Create(&vendor).Error)
	return &vendor
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
