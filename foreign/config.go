package foreign

import (
	"github.com/BurntSushi/toml"

	"github.com/wippyai/joltbridge/errors"
)

// Config holds configuration for loading a foreign library.
type Config struct {
	// Name is the module instance name inside the runtime.
	Name string `toml:"name"`

	// MemoryPages is the initial linear memory size guests are built with,
	// in 64KiB pages.
	MemoryPages uint32 `toml:"memory_pages"`

	// MemoryLimitPages caps linear memory growth. 0 means the runtime default.
	MemoryLimitPages uint32 `toml:"memory_limit_pages"`

	// CloseOnContextDone aborts guest calls whose context is cancelled.
	CloseOnContextDone bool `toml:"close_on_context_done"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Name:        "foreign",
		MemoryPages: 4,
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "read "+path)
	}
	return cfg, cfg.Validate()
}

// ParseConfig decodes TOML text over the defaults.
func ParseConfig(text string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse config")
	}
	return cfg, cfg.Validate()
}

// Validate reports inconsistent settings.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.InvalidInput(errors.PhaseConfig, "name cannot be empty")
	}
	if c.MemoryPages == 0 {
		return errors.InvalidInput(errors.PhaseConfig, "memory_pages must be at least 1")
	}
	if c.MemoryLimitPages > 0 && c.MemoryLimitPages < c.MemoryPages {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(c.MemoryLimitPages).
			Detail("memory_limit_pages %d below memory_pages %d", c.MemoryLimitPages, c.MemoryPages).
			Build()
	}
	return nil
}
