package cmd

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// DefaultConfigFiles are read in order when present.
var DefaultConfigFiles = []string{"config.yaml", "configs/config.yaml", "/etc/ordering/config.yaml"}

// Config is loaded from ORDERING_-prefixed environment variables and
// optional YAML files. A .env file in the working directory is applied
// to the environment first.
type Config struct {
	HTTP            HTTPConfig    `yaml:"http" env:"HTTP"`
	DB              DBConfig      `yaml:"db" env:"DB"`
	Relay           RelayConfig   `yaml:"relay" env:"RELAY"`
	Catalog         CatalogConfig `yaml:"catalog" env:"CATALOG"`
	Log             LogConfig     `yaml:"log" env:"LOG"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" default:"15s" usage:"Maximum graceful shutdown duration"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR" default:"0.0.0.0:8080" usage:"Operational HTTP listen address"`
}

type DBConfig struct {
	Host     string `yaml:"host" env:"HOST" default:"localhost"`
	Port     int    `yaml:"port" env:"PORT" default:"5432"`
	User     string `yaml:"user" env:"USER" default:"postgres"`
	Password string `yaml:"password" env:"PASSWORD" default:""`
	Name     string `yaml:"name" env:"NAME" default:"ordering"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE" default:"disable"`
}

// DSN renders the connection string for gorm's postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RelayConfig struct {
	Schedule  string `yaml:"schedule" env:"SCHEDULE" default:"* * * * * *" usage:"Cron expression with seconds field"`
	BatchSize int    `yaml:"batch_size" env:"BATCH_SIZE" default:"100" usage:"Outbox messages per relay pass"`
}

type CatalogConfig struct {
	Path string `yaml:"path" env:"PATH" default:"configs/catalog.yaml" usage:"YAML file with variants, promotions and shipping methods"`
}

type LogConfig struct {
	Level       string `yaml:"level" env:"LEVEL" default:"info"`
	Development bool   `yaml:"development" env:"DEVELOPMENT" default:"false"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}
	return LoadConfigFrom(DefaultConfigFiles...)
}

// LoadConfigFrom skips command-line flags and reads only the given files.
func LoadConfigFrom(files ...string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "ORDERING",
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Relay.BatchSize < 1 || c.Relay.BatchSize > 1000 {
		return errors.Errorf("relay batch size %d is out of range [1, 1000]", c.Relay.BatchSize)
	}
	if c.Catalog.Path == "" {
		return errors.New("catalog path is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrap(err, "log level")
	}
	return level, nil
}
