package vtablegen

import (
	"github.com/BurntSushi/toml"

	"github.com/wippyai/joltbridge/errors"
)

// Config controls one generator run.
type Config struct {
	// Dir is the package directory.
	Dir string `toml:"dir"`

	// Tags are set while loading, Tag among them by default.
	Tags []string `toml:"tags"`

	// Output and TestOutput are file names inside Dir.
	Output     string `toml:"output"`
	TestOutput string `toml:"test_output"`

	// Types overrides how named types cross the boundary, keyed by the
	// type as written ("BodyID" = "u32"). Consulted before type information.
	Types map[string]string `toml:"types"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Dir:        ".",
		Tags:       []string{Tag},
		Output:     Output,
		TestOutput: TestOutput,
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

// Validate reports unusable settings.
func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.InvalidInput(errors.PhaseConfig, "dir cannot be empty")
	}
	if c.Output == "" || c.TestOutput == "" {
		return errors.InvalidInput(errors.PhaseConfig, "output file names cannot be empty")
	}
	if c.Output == c.TestOutput {
		return errors.InvalidInput(errors.PhaseConfig, "output and test_output must differ")
	}
	if _, err := ParseKinds(c.Types); err != nil {
		return err
	}
	return nil
}

// Run loads the configured package and generates its files in memory.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pkg, err := Load(cfg.Dir, cfg.Tags)
	if err != nil {
		return nil, err
	}
	if len(cfg.Types) > 0 {
		overrides, _ := ParseKinds(cfg.Types)
		pkg.Resolver = Chain{overrides, pkg.Resolver}
	}
	return Generate(pkg)
}
