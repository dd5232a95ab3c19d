package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	OracleOpenAI = "openai"
	OracleRandom = "random"
)

type Config struct {
	LogLevel         string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort         string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort       string        `yaml:"websocket-port" env:"WEBSOCKET_PORT" env-default:"8765"`
	Storage          string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	BroadcastTimeout time.Duration `yaml:"broadcast-timeout" env:"BROADCAST_TIMEOUT" env-default:"5s"`
	Redis            Redis         `yaml:"redis"`
	Oracle           Oracle        `yaml:"oracle"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Oracle struct {
	Provider   string        `yaml:"provider" env:"ORACLE_PROVIDER" env-default:"openai"`
	OpenAIKey  string        `yaml:"openai-key" env:"OPENAI_KEY"`
	Model      string        `yaml:"gpt-model" env:"GPT_MODEL" env-default:"gpt-4o-mini"`
	BaseURL    string        `yaml:"openai-base-url" env:"OPENAI_BASE_URL"`
	Timeout    time.Duration `yaml:"timeout" env:"ORACLE_TIMEOUT" env-default:"30s"`
	GuessDelay time.Duration `yaml:"guess-delay" env:"GUESS_DELAY" env-default:"1s"`
}

// MustLoad reads an optional .env, then path if it exists, then the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	config := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat %s: %w", path, statErr)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage %q", that.Storage)
	}

	switch that.Oracle.Provider {
	case OracleRandom:
	case OracleOpenAI:
		if that.Oracle.OpenAIKey == "" {
			return errors.New("OPENAI_KEY is required for the openai oracle")
		}
	default:
		return fmt.Errorf("unknown oracle provider %q", that.Oracle.Provider)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
