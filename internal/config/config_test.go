package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, NewValidator().Validate(cfg))
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "satoken", cfg.SaToken.TokenName)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
server:
  port: 8080
database:
  driver: postgres
  host: db.local
  port: 5432
  replicas:
    - host=replica port=5432
log:
  level: debug
gbu:
  max_upload_mb: 4
scheduler:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"host=replica port=5432"}, cfg.Database.Replicas)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.GBU.MaxUploadMB)
	assert.False(t, cfg.Scheduler.Enabled)
	// 未出现在文件中的字段保留默认值
	assert.Equal(t, int64(86400), cfg.SaToken.Timeout)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644))

	t.Setenv("GBU_SERVER_PORT", "9090")
	t.Setenv("GBU_LOG_LEVEL", "warn")
	t.Setenv("GBU_SCHEDULER_AUDIT_RETENTION_DAYS", "30")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Scheduler.AuditRetentionDays)
}

func TestValidatorCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	cfg.Database.Driver = "oracle"
	cfg.Log.Level = "verbose"
	cfg.Scheduler.StatusCron = "not a cron"
	cfg.GBU.MaxUploadMB = 0

	err := NewValidator().Validate(cfg)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{
		"server.port",
		"database.driver",
		"database.host",
		"log.level",
		"scheduler.status_cron",
		"gbu.max_upload_mb",
	}, fields)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
