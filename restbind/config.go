// Package restbind holds the inputs of one restbind generation run.
package restbind

import (
	"io"
	"os"
	"path"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable Config reads.
const EnvPrefix = "RESTBIND_"

// Config defines the inputs to a restbind generation.
type Config struct {
	// Protocol names the HTTP binding protocol to generate for.
	Protocol string `yaml:"protocol" env:"PROTOCOL"`

	// OutputPackage is the package name of the generated files.
	OutputPackage string `yaml:"output_package" env:"OUTPUT_PACKAGE"`
	// OutputDir is where generated files are written.
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`

	// TypesImportPath is the import path of the package holding the shape
	// types generated code refers to.
	TypesImportPath string `yaml:"types_import_path" env:"TYPES_IMPORT_PATH"`
	// TypesPackageName is the name generated code refers to the types
	// package by. Defaults to the last element of TypesImportPath.
	TypesPackageName string `yaml:"types_package" env:"TYPES_PACKAGE"`

	// ModelPath is the Smithy JSON AST to generate from.
	ModelPath string `yaml:"model" env:"MODEL"`

	Verbose bool `yaml:"verbose" env:"VERBOSE"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Protocol:      "awsRestjson1",
		OutputPackage: "client",
		OutputDir:     ".",
	}
}

// Load returns the defaults overlaid with the YAML file at configPath, when
// it is not "", and then with RESTBIND_* environment variables.
func Load(configPath string) (Config, error) {
	cfg := Default()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return Config{}, errors.Wrapf(err, "cannot open config file %q", configPath)
		}
		defer f.Close()
		if err := cfg.ReadYAML(f); err != nil {
			return Config{}, errors.Wrapf(err, "cannot read config file %q", configPath)
		}
	}
	if err := cfg.ReadEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadYAML overlays the fields set in the YAML document r onto c.
func (c *Config) ReadYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(err, "cannot decode yaml config")
	}
	return nil
}

// ReadEnv overlays the RESTBIND_* environment variables that are set onto c.
func (c *Config) ReadEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.Wrap(err, "cannot read environment config")
	}
	return nil
}

// Validate checks that every field a generation needs is present, deriving
// TypesPackageName when it was left empty.
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return errors.New("no model given")
	}
	if c.Protocol == "" {
		return errors.New("no protocol given")
	}
	if c.OutputPackage == "" {
		return errors.New("no output package given")
	}
	if c.TypesImportPath == "" {
		return errors.New("no types import path given")
	}
	if c.TypesPackageName == "" {
		c.TypesPackageName = path.Base(c.TypesImportPath)
	}
	return nil
}
