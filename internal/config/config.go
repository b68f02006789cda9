// Package config загружает конфигурацию сервера из YAML файла и окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/todokeeper/internal/server/jwt"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// DefaultSecretKey используется только для локальной разработки
const DefaultSecretKey = "change-me-in-production"

// DBDriver определяет хранилище по DSN
type DBDriver string

const (
	DriverSQLite   DBDriver = "sqlite"
	DriverPostgres DBDriver = "postgres"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	DB         `yaml:"db"`
	JWT        `yaml:"jwt"`
	CORS       `yaml:"cors"`
	RateLimit  `yaml:"rate_limit"`
	Log        `yaml:"log"`
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DB struct {
	URL     string `yaml:"url" env:"DATABASE_URL" env-default:"todokeeper.db"`
	NeonURL string `yaml:"neon_url" env:"NEON_DATABASE_URL"`
}

type JWT struct {
	SecretKey                string `yaml:"secret_key" env:"SECRET_KEY" env-default:"change-me-in-production"`
	Algorithm                string `yaml:"algorithm" env:"ALGORITHM" env-default:"HS256"`
	Issuer                   string `yaml:"issuer" env:"JWT_ISSUER"`
	AccessTokenExpireMinutes int    `yaml:"access_token_expire_minutes" env:"ACCESS_TOKEN_EXPIRE_MINUTES" env-default:"30"`
	RefreshTokenExpireDays   int    `yaml:"refresh_token_expire_days" env:"REFRESH_TOKEN_EXPIRE_DAYS" env-default:"7"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

type RateLimit struct {
	Enabled          bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"true"`
	AuthPerMinute    int  `yaml:"auth_per_minute" env:"RATE_LIMIT_AUTH_PER_MINUTE" env-default:"10"`
	DefaultPerMinute int  `yaml:"default_per_minute" env:"RATE_LIMIT_DEFAULT_PER_MINUTE" env-default:"120"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// MustLoad загружает конфигурацию и паникует при ошибке
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Load читает опциональный .env, затем YAML файл (если путь задан) и окружение.
// Переменные окружения перекрывают значения из файла.
func Load(configPath string) (*Config, error) {
	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, err
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}

	if c.SecretKey == "" {
		return errors.New("jwt secret key cannot be empty")
	}
	if c.Env == EnvProd && c.SecretKey == DefaultSecretKey {
		return errors.New("default jwt secret key is not allowed in prod")
	}

	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported jwt algorithm %q", c.Algorithm)
	}

	if c.AccessTokenExpireMinutes <= 0 {
		return errors.New("access token expiry must be positive")
	}
	if c.RefreshTokenExpireDays <= 0 {
		return errors.New("refresh token expiry must be positive")
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}

	if c.RateLimit.Enabled && (c.AuthPerMinute <= 0 || c.DefaultPerMinute <= 0) {
		return errors.New("rate limits must be positive when enabled")
	}

	return nil
}

// JWTConfig переводит настройки в конфигурацию сервиса токенов
func (c *Config) JWTConfig() jwt.Config {
	return jwt.Config{
		Secret:     []byte(c.SecretKey),
		Algorithm:  c.Algorithm,
		Issuer:     c.Issuer,
		AccessTTL:  time.Duration(c.AccessTokenExpireMinutes) * time.Minute,
		RefreshTTL: time.Duration(c.RefreshTokenExpireDays) * 24 * time.Hour,
	}
}

// DSN возвращает драйвер и строку подключения. NEON_DATABASE_URL имеет приоритет.
func (c *Config) DSN() (DBDriver, string) {
	dsn := c.DB.URL
	if c.NeonURL != "" {
		dsn = c.NeonURL
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres, dsn
	}
	return DriverSQLite, strings.TrimPrefix(dsn, "sqlite://")
}
