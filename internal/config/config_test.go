package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
user = "postgres"
dbname = "availability"

[admin]
token = "secret"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 30, cfg.Schedule.SlotDurationMinutes)
	assert.Equal(t, "UTC", cfg.Schedule.Timezone)
	assert.Equal(t, 90, cfg.Schedule.MaxAdvanceDays)
	assert.False(t, cfg.Redis.Enabled())
	assert.Zero(t, cfg.Schedule.CacheTTL())
}

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse(`
[server]
http_port = 9090

[database]
host = "db"
user = "svc"
password = "p@ss"
dbname = "availability"

[redis]
addr = "redis:6379"

[schedule]
slot_duration_minutes = 45
timezone = "Europe/Moscow"
cache_ttl_seconds = 120
max_advance_days = 30

[admin]
token = "secret"

[rate_limit]
enabled = true
requests_per_second = 5
`)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2*time.Minute, cfg.Schedule.CacheTTL())
	assert.Equal(t, 30, cfg.Schedule.MaxAdvanceDays)
	assert.Equal(t, 6, cfg.RateLimit.Burst)
	assert.Equal(t, "postgres://svc:p%40ss@db:5432/availability?sslmode=disable", cfg.Database.DSN())

	loc, err := cfg.Schedule.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing database host", data: `
[database]
user = "postgres"
dbname = "availability"
[admin]
token = "secret"
`},
		{name: "missing admin token", data: `
[database]
host = "localhost"
user = "postgres"
dbname = "availability"
`},
		{name: "slot duration too small", data: minimalConfig + `
[schedule]
slot_duration_minutes = 2
`},
		{name: "booking horizon too far", data: minimalConfig + `
[schedule]
max_advance_days = 400
`},
		{name: "negative booking horizon", data: minimalConfig + `
[schedule]
max_advance_days = -1
`},
		{name: "unknown timezone", data: minimalConfig + `
[schedule]
timezone = "Mars/Olympus"
`},
		{name: "rate limit without rate", data: minimalConfig + `
[rate_limit]
enabled = true
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "pg.internal")
	t.Setenv("TEST_ADMIN_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
host = "${TEST_DB_HOST}"
user = "postgres"
dbname = "availability"

[admin]
token = "${TEST_ADMIN_TOKEN}"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Admin.Token)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
