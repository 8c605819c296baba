package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Checkout  CheckoutConfig
	Auth      AuthConfig
	Companies CompaniesConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type CheckoutConfig struct {
	TxTimeout        time.Duration
	MaxRetryAttempts int
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

// CompaniesConfig toggles multi-tenant scoping of components to the acting user's company.
type CompaniesConfig struct {
	FullScoping bool
}

// Load reads configuration from the environment, falling back to the optional
// config file at path and then to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "stockroom")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "stockroom")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CHECKOUT_TX_TIMEOUT", "5s")
	v.SetDefault("CHECKOUT_MAX_RETRY_ATTEMPTS", 3)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "stockroom")
	v.SetDefault("COMPANIES_FULL_SCOPING", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	txTimeout, err := time.ParseDuration(v.GetString("CHECKOUT_TX_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing CHECKOUT_TX_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Checkout: CheckoutConfig{
			TxTimeout:        txTimeout,
			MaxRetryAttempts: v.GetInt("CHECKOUT_MAX_RETRY_ATTEMPTS"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			JWTIssuer: v.GetString("JWT_ISSUER"),
		},
		Companies: CompaniesConfig{
			FullScoping: v.GetBool("COMPANIES_FULL_SCOPING"),
		},
	}

	if cfg.Checkout.MaxRetryAttempts < 1 {
		cfg.Checkout.MaxRetryAttempts = 1
	}

	return cfg, nil
}
