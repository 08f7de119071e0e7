package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// PathEnv names the variable holding the YAML config path.
	PathEnv = "CONFIG_PATH"
	// DefaultPath is read when PathEnv is unset. It may be absent.
	DefaultPath = "./config.yaml"
)

// Load builds the worker and topicctl configuration. Environment variables
// win over the YAML file, which wins over env-default tags. A missing file
// is an error only when PathEnv names it.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := configPath()
	switch _, statErr := os.Stat(path); {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	case explicit || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("load config: %s=%s: %w", PathEnv, path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("load config from env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func configPath() (path string, explicit bool) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, true
	}
	return DefaultPath, false
}
