package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("CONFIG_PATH", path)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	req := require.New(t)
	writeConfig(t, `
http:
  addr: ":8080"
postgres:
  dsn: "postgres://localhost/bubble_chat"
`)

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal("bubble-chat", cfg.Logging.Service)
	req.Equal("dev", cfg.Logging.Env)
	req.Equal("std", cfg.Logging.Backend)
	req.Equal(256, cfg.WS.SendBuffer)
	req.EqualValues(64, cfg.WS.ReadLimitKB)
	req.Equal(15*time.Second, cfg.PingEvery(15*time.Second))
}

func TestLoadConfig_ParsesPingEvery(t *testing.T) {
	req := require.New(t)
	writeConfig(t, `
http:
  addr: ":8080"
postgres:
  dsn: "postgres://localhost/bubble_chat"
ws:
  pingEvery: "30s"
`)

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal(30*time.Second, cfg.PingEvery(15*time.Second))
}

func TestLoadConfig_RequiresHTTPAddr(t *testing.T) {
	req := require.New(t)
	writeConfig(t, `
postgres:
  dsn: "postgres://localhost/bubble_chat"
`)

	_, err := LoadConfig()
	req.ErrorContains(err, "http.addr")
}

func TestLoadConfig_RequiresDSN(t *testing.T) {
	req := require.New(t)
	writeConfig(t, `
http:
  addr: ":8080"
`)

	_, err := LoadConfig()
	req.ErrorContains(err, "postgres.dsn")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadConfig()
	require.Error(t, err)
}
