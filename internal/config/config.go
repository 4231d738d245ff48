package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/aidar/invento-api/internal/domain"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server       ServerConfig       // Настройки HTTP сервера
	Database     DatabaseConfig     // Настройки подключения к БД
	JWT          JWTConfig          // Настройки JWT авторизации
	Mail         MailConfig         // Настройки SMTP для писем участникам
	Redis        RedisConfig        // Настройки Redis (блокировка входа)
	Registration RegistrationConfig // Правила регистрации команд
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port        string   `envconfig:"SERVER_PORT" default:"8080"`
	Host        string   `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Env         string   `envconfig:"APP_ENV" default:"production"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// IsDevelopment возвращает true если в ответах можно показывать детали ошибок
func (s ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(s.Env, "development")
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"invento"`
	Password string `envconfig:"DB_PASSWORD" default:"invento_pass"`
	Name     string `envconfig:"DB_NAME" default:"invento"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`
}

// JWTConfig содержит настройки JWT авторизации
type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" required:"true"`
	ExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"168"`
}

// MailConfig содержит настройки SMTP. Пустой Host отключает отправку писем
type MailConfig struct {
	Host     string `envconfig:"EMAIL_HOST"`
	Port     int    `envconfig:"EMAIL_PORT" default:"587"`
	User     string `envconfig:"EMAIL_USER"`
	Password string `envconfig:"EMAIL_PASSWORD"`
	From     string `envconfig:"EMAIL_FROM"`
}

// Enabled возвращает true если SMTP сервер задан
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// RedisConfig содержит настройки Redis и блокировки входа.
// Без REDIS_URL счетчики неудачных попыток хранятся в памяти процесса
type RedisConfig struct {
	URL                 string `envconfig:"REDIS_URL"`
	LoginMaxFailures    int    `envconfig:"LOGIN_MAX_FAILURES" default:"5"`
	LoginLockoutMinutes int    `envconfig:"LOGIN_LOCKOUT_MINUTES" default:"15"`
}

// LockoutWindow возвращает окно блокировки как time.Duration
func (r RedisConfig) LockoutWindow() time.Duration {
	return time.Duration(r.LoginLockoutMinutes) * time.Minute
}

// RegistrationConfig содержит правила валидации регистрации
type RegistrationConfig struct {
	LeaderRequiredFields []string `envconfig:"LEADER_REQUIRED_FIELDS" default:"name,email,phone,year,class"`
}

// LeaderPolicy возвращает политику обязательных полей лидера
func (r RegistrationConfig) LeaderPolicy() (domain.LeaderPolicy, error) {
	return domain.NewLeaderPolicy(r.LeaderRequiredFields)
}

// GetExpiration возвращает срок действия токена как time.Duration
func (j JWTConfig) GetExpiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

// DSN возвращает строку подключения к PostgreSQL, DATABASE_URL имеет приоритет
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load читает .env (если есть) и конфигурацию из переменных окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет значения, которые envconfig не может проверить сам
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if _, err := c.Registration.LeaderPolicy(); err != nil {
		return fmt.Errorf("invalid LEADER_REQUIRED_FIELDS: %w", err)
	}
	if c.JWT.ExpirationHours <= 0 {
		return errors.New("JWT_EXPIRATION_HOURS must be positive")
	}
	if c.Mail.Port <= 0 {
		return errors.New("EMAIL_PORT must be positive")
	}
	return nil
}
