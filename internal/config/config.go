package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DriverMemory = "memory"
	DriverSqlite = "sqlite"
	DriverRedis  = "redis"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type TgBot struct {
	Enabled          bool   `toml:"enabled"`
	TelegramApiToken string `toml:"telegram_apitoken"`
}

type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type Storage struct {
	Driver     string `toml:"driver"`
	SqliteFile string `toml:"sqlite_file"`
	Redis      Redis  `toml:"redis"`
}

// TLS is enabled when both files are set. cmd/certgen writes a self-signed
// pair.
type TLS struct {
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`
}

func (t TLS) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

type Server struct {
	Host    string  `toml:"host"`
	Port    int     `toml:"port"`
	Debug   bool    `toml:"debug_mode"`
	TLS     TLS     `toml:"tls"`
	Storage Storage `toml:"storage"`
}

func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Config struct {
	TgBot  TgBot
	Server Server
}

func defaultServer() Server {
	return Server{
		Port: 3000,
		Storage: Storage{
			Driver:     DriverSqlite,
			SqliteFile: "darts.sqlite",
			Redis:      Redis{Addr: "localhost:6379"},
		},
	}
}

func New(serverPath, botPath string) (Config, error) {
	var tgBotCfg TgBot
	_, err := toml.DecodeFile(botPath, &tgBotCfg)
	if err != nil {
		return Config{}, err
	}
	token := os.Getenv("TELEGRAM_APITOKEN")
	if token != "" {
		tgBotCfg.TelegramApiToken = token
	}

	serverCfg := defaultServer()
	_, err = toml.DecodeFile(serverPath, &serverCfg)
	if err != nil {
		return Config{}, err
	}
	switch serverCfg.Storage.Driver {
	case DriverMemory, DriverSqlite, DriverRedis:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownDriver, serverCfg.Storage.Driver)
	}

	return Config{
		TgBot:  tgBotCfg,
		Server: serverCfg,
	}, nil
}
