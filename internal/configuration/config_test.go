package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE_PATH", writeConfigFile(t, "app:\n  log_level: info\n"))

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProfileDefault, config.App.Profile)
	assert.Equal(t, 8080, config.App.Port)
	assert.Equal(t, 2, config.App.RestartDelay)
	assert.Equal(t, DatabaseSQLite, config.Database.Type)
	require.NotNil(t, config.Database.SQLite)
	assert.Equal(t, "botpanel.db", config.Database.SQLite.Path)
	assert.Equal(t, DisabledProvider, config.Cache.Type)
	assert.Equal(t, ProviderMemory, config.Events.Type)
	assert.Equal(t, "bot-lifecycle", config.Events.Queues[EventsBotLifecycle].Name)
	assert.Equal(t, "$47,832.50", config.Payments.Balance)
	assert.Equal(t, "$124,560", config.Payments.MonthlyVolume)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfigFile(t, `
app:
  port: 9000
  allowed_origins:
    - https://panel.example.com
database:
  type: postgres
  postgres:
    host: db
    user: botpanel
    password: secret
    name: botpanel
notifier:
  type: filesystem
  operator_email: ops@example.com
  filesystem:
    directory: /tmp/notifications
`)
	t.Setenv("CONFIG_FILE_PATH", path)
	t.Setenv("APP__PORT", "9090")
	t.Setenv("APP__TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")
	t.Setenv("DATABASE__SEED", "true")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, config.App.Port)
	assert.Equal(t, []string{"https://panel.example.com"}, config.App.AllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, config.App.TrustedProxies)
	assert.True(t, config.Database.Seed)
	require.NotNil(t, config.Database.Postgres)
	assert.Equal(t, int32(5432), config.Database.Postgres.Port)
	assert.Equal(t, "disable", config.Database.Postgres.SSLMode)
	require.NotNil(t, config.Notifier.Filesystem)
	assert.Equal(t, "/tmp/notifications", config.Notifier.Filesystem.Directory)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown database type", func(t *testing.T) {
		t.Setenv("CONFIG_FILE_PATH", writeConfigFile(t, "database:\n  type: mongodb\n"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("smtp notifier without smtp section", func(t *testing.T) {
		t.Setenv("CONFIG_FILE_PATH", writeConfigFile(t, "notifier:\n  type: smtp\n  operator_email: ops@example.com\n"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed trusted proxy", func(t *testing.T) {
		t.Setenv("CONFIG_FILE_PATH", writeConfigFile(t, "app:\n  trusted_proxies: [not-an-ip]\n"))
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestParseArrayFields(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, k.Set("app.allowed_origins", "[http://a.test http://b.test]"))
	require.NoError(t, k.Set("cache.redis.hosts", "redis-1:6379, redis-2:6379,"))

	parseArrayFields(k)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, k.Strings("app.allowed_origins"))
	assert.Equal(t, []string{"redis-1:6379", "redis-2:6379"}, k.Strings("cache.redis.hosts"))
}

func TestGetProfile(t *testing.T) {
	assert.Equal(t, ProfileDefault, GetProfile("").Name)

	worker := GetProfile(ProfileWorker)
	assert.False(t, worker.HTTPServer)
	assert.True(t, worker.Workers.AnyEnabled())

	assert.False(t, worker.OwnsSchema)

	api := GetProfile(ProfileAPI)
	assert.False(t, api.Workers.AnyEnabled())
	assert.True(t, api.NeedsEvents())
	assert.True(t, api.OwnsSchema)
}

func TestLookupProfile(t *testing.T) {
	_, ok := LookupProfile("batch")
	assert.False(t, ok)

	profile, ok := LookupProfile("")
	assert.True(t, ok)
	assert.Equal(t, ProfileDefault, profile.Name)

	assert.Equal(t, []string{ProfileDefault, ProfileAPI, ProfileWorker}, ProfileNames())
}
