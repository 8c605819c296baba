package commons

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"stockroom/internal/config"
)

// DefaultConfigPath is used when CONFIG_FILE is unset.
const DefaultConfigPath = "internal/config/config.yaml"

// ConfigPath returns CONFIG_FILE or DefaultConfigPath.
func ConfigPath() string {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfig loads a local .env file when present and then the service configuration.
func LoadConfig(path string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
