package wordimport

import (
	"fmt"
	"time"

	"github.com/heartmarshall/wordbook-admin/internal/config"
)

// CLIConfig holds settings of the word-import command.
type CLIConfig struct {
	File    string        `yaml:"file"    env:"WORD_IMPORT_FILE"`
	Source  string        `yaml:"source"  env:"WORD_IMPORT_SOURCE"`
	DryRun  bool          `yaml:"dry_run" env:"WORD_IMPORT_DRY_RUN"`
	Timeout time.Duration `yaml:"timeout" env:"WORD_IMPORT_TIMEOUT" env-default:"30m"`
}

// Options converts the command settings into import options.
func (c *CLIConfig) Options() Options {
	opts := Options{DryRun: c.DryRun}
	if c.Source != "" {
		src := c.Source
		opts.SourceName = &src
	}
	return opts
}

// LoadCLIConfig reads word-import configuration from an optional YAML file
// and environment variables. Priority: ENV > YAML > defaults. A path that
// does not exist is an error.
func LoadCLIConfig(path string) (*CLIConfig, error) {
	var cfg CLIConfig
	if err := config.Read(path, path != "", &cfg); err != nil {
		return nil, fmt.Errorf("word-import config: %w", err)
	}
	return &cfg, nil
}
