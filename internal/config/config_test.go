package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 15000, cfg.Pipeline.ClauseContentLimit)
	assert.Equal(t, 10000, cfg.Pipeline.RemediationInputLimit)
	assert.Empty(t, cfg.Database.Driver)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8088
  readTimeout: 5s
ai:
  provider: mock
database:
  driver: postgres
  host: db
  port: 5432
  user: legal
  password: "p@ss"
  name: legal
pipeline:
  defaultRegulations: [GDPR, SOC2]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 180*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "mock", cfg.AI.Provider)
	assert.Equal(t, []string{"GDPR", "SOC2"}, cfg.Pipeline.DefaultRegulations)
	assert.Equal(t, "postgres://legal:p%40ss@db:5432/legal?sslmode=disable", cfg.PostgresDSN())
}

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"OPENAI_API_KEY", "API_KEY", "AI_MODEL", "AI_PROVIDER", "SERVER_PORT", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"API_KEY":     "fallback",
		"AI_MODEL":    "gpt-4.1",
		"AI_PROVIDER": "MOCK",
		"SERVER_PORT": "9000",
		"LOG_LEVEL":   "debug",
	}
	cfg := Default()
	require.NoError(t, cfg.applyEnv(mapLookup(env)))

	assert.Equal(t, "fallback", cfg.AI.APIKey)
	assert.Equal(t, "gpt-4.1", cfg.AI.Model)
	assert.Equal(t, "mock", cfg.AI.Provider)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)

	env["OPENAI_API_KEY"] = "primary"
	require.NoError(t, cfg.applyEnv(mapLookup(env)))
	assert.Equal(t, "primary", cfg.AI.APIKey)
}

func TestApplyEnv_BadPort(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(func(k string) (string, bool) {
		if k == "SERVER_PORT" {
			return "abc", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.AI.Provider = "gemini"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.Driver = "sqlite"
	assert.Error(t, cfg.Validate())
}

func TestMySQLDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.User = "root"
	cfg.Database.Password = "secret"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 3306
	cfg.Database.Name = "legal"
	assert.Equal(t, "root:secret@tcp(localhost:3306)/legal?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}
