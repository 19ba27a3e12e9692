package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

type OrderConfig struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	GRPCServer `yaml:"grpc_server"`
	OrderDB    `yaml:"order_db"`
	LogConfig  `yaml:"log_config"`
	Web        `yaml:"web"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

type OrderDB struct {
	Dsn            string `yaml:"dsn" env:"ORDER_DB_DSN" env-required:"true"`
	MaxOpenConns   int    `yaml:"max_open_conns" env:"ORDER_DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns   int    `yaml:"max_idle_conns" env:"ORDER_DB_MAX_IDLE_CONNS" env-default:"5"`
	AutoMigrate    bool   `yaml:"auto_migrate" env:"ORDER_DB_AUTO_MIGRATE" env-default:"false"`
	MigrationsPath string `yaml:"migrations_path" env:"ORDER_DB_MIGRATIONS_PATH" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

// Web holds defaults for the server-rendered forms.
type Web struct {
	ExtraBlankRows int `yaml:"extra_blank_rows" env:"WEB_EXTRA_BLANK_ROWS" env-default:"1"`
}

// Load reads the YAML file at path, with env overrides. An empty path reads
// the environment only.
func Load(path string) (*OrderConfig, error) {
	var cfg OrderConfig

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errors.Wrap(err, "read config from env")
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, "failed to find config file")
	}
	// YAML to struct object
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return &cfg, nil
}

func (c *OrderConfig) HTTPAddr() string {
	return c.HTTPServer.Host + ":" + c.HTTPServer.Port
}

func (c *OrderConfig) GRPCAddr() string {
	return c.GRPCServer.Host + ":" + c.GRPCServer.Port
}
