// Package config loads the runtime configuration from LOCALHISTORY_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/gabapcia/localhistory/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended to every environment variable name.
const envPrefix = "LOCALHISTORY"

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendRedis   = "redis"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// Config is the process configuration.
//
// Leaf fields use split_words instead of explicit envconfig names: an explicit
// name also falls back to the unprefixed variable, which would read PATH or
// USERNAME from the host environment.
type Config struct {
	LogLevel         string `split_words:"true" default:"info" validate:"oneof=debug info warn error"`
	LogFile          string `split_words:"true"`
	ServiceName      string `split_words:"true" default:"localhistory" validate:"notblank"`
	TelemetryEnabled bool   `split_words:"true" default:"false"`
	StorageBackend   string `split_words:"true" default:"leveldb" validate:"oneof=redis leveldb memory"`

	Redis   RedisConfig   `envconfig:"REDIS"`
	LevelDB LevelDBConfig `envconfig:"LEVELDB"`
	Retry   RetryConfig   `envconfig:"RETRY"`
}

// RedisConfig configures the redis storage backend.
type RedisConfig struct {
	Addr     string `split_words:"true" default:"localhost:6379" validate:"hostname_port"`
	Username string `split_words:"true"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0" validate:"gte=0"`
}

// LevelDBConfig configures the embedded storage backend.
type LevelDBConfig struct {
	Path string `split_words:"true" default:"./data/localhistory" validate:"notblank"`
}

// RetryConfig is the retry policy used when connecting to storage and when
// applying reconcile batches.
type RetryConfig struct {
	Attempts uint          `split_words:"true" default:"3" validate:"min=1"`
	Delay    time.Duration `split_words:"true" default:"1s" validate:"gt=0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
