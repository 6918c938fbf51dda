package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fkcurrie/devmem-golang/internal/physmem"
)

// DeviceEnv overrides the configured device path when set
const DeviceEnv = "DEVMEM_DEVICE"

// Config represents the application configuration
type Config struct {
	// Device is the file mapped for physical memory access
	Device string `json:"device"`
	// DefaultWidth is used when no WIDTH argument is given
	DefaultWidth physmem.Width `json:"default_width"`
}

// LoadConfig loads the configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Device:       physmem.DefaultDevice,
		DefaultWidth: physmem.DefaultWidth,
	}
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if dev := os.Getenv(DeviceEnv); dev != "" {
		c.Device = dev
	}
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("device path is empty")
	}
	if !c.DefaultWidth.Valid() {
		return fmt.Errorf("default_width: %w: %d", physmem.ErrBadWidth, uint(c.DefaultWidth))
	}
	return nil
}
