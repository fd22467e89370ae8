package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{"DATABASE_DRIVER", "DATABASE_PORT", "JOBS_INTEGRITYAUDITENABLED", "JOBS_INTEGRITYAUDITSCHEDULE", "JOBS_INTEGRITYAUDITTIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Jobs.IntegrityAuditEnabled)
	assert.Equal(t, "0 15 3 * * *", cfg.Jobs.IntegrityAuditSchedule)
	assert.Equal(t, 10*time.Minute, cfg.Jobs.IntegrityAuditTimeoutDuration())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "postgres",
			cfg:  Config{Database: DatabaseConfig{Driver: DriverPostgres}},
		},
		{
			name: "sqlite with path",
			cfg:  Config{Database: DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"}},
		},
		{
			name:    "sqlite without path",
			cfg:     Config{Database: DatabaseConfig{Driver: DriverSQLite}},
			wantErr: "database.path",
		},
		{
			name:    "unknown driver",
			cfg:     Config{Database: DatabaseConfig{Driver: "mysql"}},
			wantErr: "unsupported database driver",
		},
		{
			name: "audit without schedule",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverPostgres},
				Jobs:     JobsConfig{IntegrityAuditEnabled: true},
			},
			wantErr: "integrityAuditSchedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "crm", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=crm sslmode=require", d.ConnectionString())
}
