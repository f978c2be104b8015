package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	server := writeFile(t, dir, "server.toml", `
port = 8080
debug_mode = true

[tls]
cert_file = "cert.pem"
key_file = "key.pem"

[storage]
driver = "redis"

[storage.redis]
addr = "redis:6379"
db = 2
`)
	bot := writeFile(t, dir, "bot.toml", `
enabled = true
telegram_apitoken = "from-file"
`)
	t.Setenv("TELEGRAM_APITOKEN", "")

	cfg, err := New(server, bot)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.True(t, cfg.Server.Debug)
	assert.True(t, cfg.Server.TLS.Enabled())
	assert.Equal(t, DriverRedis, cfg.Server.Storage.Driver)
	assert.Equal(t, "redis:6379", cfg.Server.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Server.Storage.Redis.DB)
	assert.Equal(t, "darts.sqlite", cfg.Server.Storage.SqliteFile)
	assert.True(t, cfg.TgBot.Enabled)
	assert.Equal(t, "from-file", cfg.TgBot.TelegramApiToken)

	t.Setenv("TELEGRAM_APITOKEN", "from-env")
	cfg, err = New(server, bot)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TgBot.TelegramApiToken)
}

func TestNewUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	server := writeFile(t, dir, "server.toml", "[storage]\ndriver = \"postgres\"\n")
	bot := writeFile(t, dir, "bot.toml", "")

	_, err := New(server, bot)
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New("nope/server.toml", "nope/bot.toml")
	assert.Error(t, err)
}
