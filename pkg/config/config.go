package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration
type DBConfig struct {
	Driver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD" default:"password"`
	DBName          string        `envconfig:"DB_NAME" default:"bizcards"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	SQLitePath      string        `envconfig:"DB_SQLITE_PATH" default:"bizcards.db"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	LogLevel        string        `envconfig:"DB_LOG_LEVEL" default:"warn"`
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GormLogLevel maps DB_LOG_LEVEL onto the gorm logger levels
func (c *DBConfig) GormLogLevel() logger.LogLevel {
	switch c.LogLevel {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"3000"`
	Env             string        `envconfig:"APP_ENV" default:"development"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string `envconfig:"JWT_SIGNING_KEY" required:"true"`
	ExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// CORSConfig lists the browser origins allowed to call the API.
// Empty means only the local origin on the server port.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// CardConfig holds card-specific tunables
type CardConfig struct {
	BizNumberMaxAttempts int `envconfig:"BIZNUMBER_MAX_ATTEMPTS" default:"32"`
}

// AuthConfig holds password hashing settings
type AuthConfig struct {
	BcryptCost int `envconfig:"BCRYPT_COST" default:"12"`
}

// Config holds all configuration
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"bizcard-service"`
	DB          DBConfig
	Server      ServerConfig
	JWT         JWTConfig
	Log         LogConfig
	CORS        CORSConfig
	Card        CardConfig
	Auth        AuthConfig
}

// Load loads configuration from the .env file (if present) and environment variables
func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:" + cfg.Server.Port}
	}

	return &cfg, nil
}

// LogFields returns the non-secret configuration as zap fields
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("db_driver", c.DB.Driver),
		zap.String("db_host", c.DB.Host),
		zap.String("db_name", c.DB.DBName),
		zap.String("server_port", c.Server.Port),
	}
}
