// Package config defines the data structures related to configuration and
// includes functions for loading and validating the simulations it lists.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-simulator.
type Configuration struct {
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
	Simulations []Simulation  `yaml:"simulations"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`    // pretty, csv, xlsx, chart
	Directory string `yaml:"directory,omitempty"` // where xlsx and chart files go
}

// LoadEnvironment loads KEY=VALUE pairs from an env file into the process
// environment. A missing file is not an error.
func LoadEnvironment(path string) error {
	if path == "" {
		path = constants.DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading env file %s, %s", path, err)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Bound explicitly so overrides apply even when the file omits the key.
	for _, key := range []string{"logging.level", "logging.format", "logging.outputFile", "output.format", "output.directory"} {
		_ = v.BindEnv(key)
	}
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate rejects configurations that cannot be simulated at all: unnamed
// or duplicated simulations, unknown products or systems and fractional
// terms. Other numeric inputs are validated by the amortization engine when
// each simulation runs.
func (conf *Configuration) Validate() error {
	seen := make(map[string]struct{}, len(conf.Simulations))
	for i, sim := range conf.Simulations {
		name := strings.TrimSpace(sim.Name)
		if name == "" {
			return fmt.Errorf("simulation %d has no name", i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("simulation name %q is used more than once", name)
		}
		seen[name] = struct{}{}

		if _, err := sim.ProductKind(); err != nil {
			return fmt.Errorf("simulation %s: %w", name, err)
		}
		if _, err := sim.FinancingConfig(); err != nil {
			return fmt.Errorf("simulation %s: %w", name, err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for settings that are accepted but probably unintended.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	active := 0
	for _, sim := range conf.Simulations {
		if !sim.Active {
			continue
		}
		active++
		warnings = append(warnings, sim.Warnings()...)
	}
	if active == 0 {
		warnings = append(warnings, "no active simulations configured")
	}
	return warnings
}

// ActiveSimulations returns the simulations marked active, in file order.
func (conf *Configuration) ActiveSimulations() []Simulation {
	var active []Simulation
	for _, sim := range conf.Simulations {
		if sim.Active {
			active = append(active, sim)
		}
	}
	return active
}
