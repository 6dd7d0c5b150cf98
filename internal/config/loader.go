package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config.yaml"

// Load reads the server configuration and validates it. The YAML file is
// taken from CONFIG_PATH, else ./config.yaml if it exists; environment
// variables override the file and env-default tags fill the rest.
func Load() (*Config, error) {
	var cfg Config

	path, required := os.LookupEnv("CONFIG_PATH")
	if path == "" {
		path, required = defaultConfigPath, false
	}

	if err := Read(path, required, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Read fills dst, a pointer to a struct with cleanenv tags, from the YAML
// file at path and the environment. A missing file is an error only when
// required is set; otherwise dst comes from the environment alone.
func Read(path string, required bool, dst any) error {
	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(path, dst); err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			return nil
		case required || !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("file %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(dst); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}
