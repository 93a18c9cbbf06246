package backend

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/joeandaverde/databas/internal/storage"
)

// Config describes the configuration for the database engine.
type Config struct {
	DataDir    string `yaml:"data_directory"`
	PageSize   int    `yaml:"page_size"`
	FrameCount int    `yaml:"frame_count"`
	LogLevel   string `yaml:"log_level"`
}

// DefaultFrameCount is the page-cache size used when the config doesn't
// specify one.
const DefaultFrameCount = 64

// LoadConfig reads a YAML config document.
func LoadConfig(r io.Reader) (*Config, error) {
	config := &Config{}
	if err := yaml.NewDecoder(r).Decode(config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_directory is required")
	}
	// The page size is fixed at build time; the config knob exists so a
	// mismatched deployment fails loudly instead of corrupting a file.
	if c.PageSize != 0 && c.PageSize != storage.PageSize {
		return fmt.Errorf("page_size %d is not supported, this build uses %d", c.PageSize, storage.PageSize)
	}
	if c.FrameCount < 0 {
		return fmt.Errorf("frame_count must not be negative")
	}
	return nil
}
