package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"portfolio_backend/internal/validator"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "PORTFOLIO_"
)

type ServerConfig struct {
	Host        string   `yaml:"host" env:"HOST"`
	Port        int      `yaml:"port" env:"PORT" validate:"min=1,max=65535"`
	Env         string   `yaml:"env" env:"ENV" validate:"oneof=development production test"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

type StorageConfig struct {
	Type      string `yaml:"type" env:"TYPE" validate:"oneof=memory local s3 cloudflare_r2 minio"`
	BasePath  string `yaml:"base_path" env:"BASE_PATH"`   // local
	Bucket    string `yaml:"bucket" env:"BUCKET"`         // s3/r2/minio
	Region    string `yaml:"region" env:"REGION"`         // s3
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"` // s3/r2/minio
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"` // s3/r2/minio
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`     // r2/minio или кастомный s3
	UseSSL    bool   `yaml:"use_ssl" env:"USE_SSL"`
}

type UploadConfig struct {
	MaxSize       int64  `yaml:"max_size" env:"MAX_SIZE" validate:"min=1"` // байт на файл
	AllowedPrefix string `yaml:"allowed_prefix" env:"ALLOWED_PREFIX" validate:"required"`
}

type ClientConfig struct {
	BaseURL        string `yaml:"base_url" env:"BASE_URL" validate:"required,url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS" validate:"min=1"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server" envPrefix:"SERVER_"`
	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Upload  UploadConfig  `yaml:"upload" envPrefix:"UPLOAD_"`
	Client  ClientConfig  `yaml:"client" envPrefix:"CLIENT_"`
}

// Timeout - таймаут HTTP-клиента
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

var AppConfig *Config

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	var cfg Config

	cfg.Server.Port = 8000
	cfg.Server.Env = "development"
	cfg.Server.CORSOrigins = []string{"*"}

	cfg.Storage.Type = "memory"
	cfg.Storage.BasePath = "./uploads"

	cfg.Upload.MaxSize = 5 * 1024 * 1024 // 5MB
	cfg.Upload.AllowedPrefix = "image/"

	cfg.Client.BaseURL = "http://localhost:8000"
	cfg.Client.TimeoutSeconds = 10

	return &cfg
}

// LoadConfig собирает конфигурацию: значения по умолчанию, затем yaml-файл
// (CONFIG_PATH или config/config.yaml), затем переменные окружения PORTFOLIO_*.
func LoadConfig() (*Config, error) {
	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}

	if err := loadFile(cfg, configPath); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := env.Parse(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// PORT без префикса, как принято у хостингов
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	if err := validator.New().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	AppConfig = cfg
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

// GetConfig возвращает загруженную конфигурацию или значения по умолчанию
func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return Default()
		}
		return cfg
	}
	return AppConfig
}
