// Package config defines the runtime configuration of mirrorcrypt.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrUsage is returned when the configuration fails validation.
var ErrUsage = errors.New("usage error")

// EnvPrefix is the prefix of environment variables overriding flags.
const EnvPrefix = "MIRRORCRYPT"

// DefaultEncryptSuffix is appended to encrypted file names.
const DefaultEncryptSuffix = ".enc"

// Encodings accepted by the encrypt command.
const (
	EncodingBase64 = "base64"
	EncodingText   = "text"
)

// Suffixes holds the file name suffixes for encrypted and decrypted output.
type Suffixes struct {
	Encrypt string `mapstructure:"encrypt-ext" validate:"required"`
	Decrypt string `mapstructure:"decrypt-ext"`
}

// Config holds the configuration of a single invocation.
type Config struct {
	// Key selection
	Key        string `label:"--key"      mapstructure:"key"      validate:"exclusive=KeyFile"`
	KeyFile    string `label:"--key-file" mapstructure:"key-file"`
	KeyDir     string `mapstructure:"key-dir"`
	AutoCreate bool   `mapstructure:"auto-create"`

	// Processing
	Parallel           int      `mapstructure:"parallel"            validate:"min=1"`
	Encoding           string   `mapstructure:"encoding"            validate:"oneof=base64 text"`
	Delete             bool     `mapstructure:"delete"`
	PreserveTimestamps bool     `mapstructure:"preserve-timestamps"`
	Suffixes           Suffixes `mapstructure:",squash"`

	// Selection
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `mapstructure:"include-from" validate:"omitempty,file"`
	ExcludeFrom string   `mapstructure:"exclude-from" validate:"omitempty,file"`

	// Output
	Show    bool `mapstructure:"show"`
	Quiet   bool `mapstructure:"quiet"`
	Verbose bool `mapstructure:"verbose"`
	Stats   bool `mapstructure:"stats"`
	Dry     bool `mapstructure:"dry"`

	// Debug is the per-step delay in milliseconds of the traversal animation; zero disables it.
	Debug int `mapstructure:"debug" validate:"min=0"`

	// Command-specific
	Decrypt bool `mapstructure:"-"`
	Force   bool `mapstructure:"force"`
	Print   bool `mapstructure:"print"`

	// Positional arguments
	Files []string `mapstructure:"-"`
}

// Load fills cfg from the config file named by the "config" flag, the environment and flags,
// in increasing order of precedence.
func Load(flags *pflag.FlagSet, cfg *Config) error {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("parallel", runtime.NumCPU())
	v.SetDefault("encoding", EncodingBase64)
	v.SetDefault("encrypt-ext", DefaultEncryptSuffix)

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

// Display reports whether the configuration should be printed instead of running the command.
func (c *Config) Display() bool {
	return c.Show
}

// Validate validates config against its struct tags.
func (c *Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerExclusive(validator); err != nil {
		return err
	}

	errs := validator.Validate(config)

	switch {
	case len(errs) == 1:
		return fmt.Errorf("%w: %w", ErrUsage, errs[0])
	case len(errs) > 1:
		return fmt.Errorf("%ws:\n%w", ErrUsage, errors.Join(errs...))
	}

	return nil
}

// Streaming reports whether input is read from stdin and written to stdout.
func (c *Config) Streaming() bool {
	return len(c.Files) == 0 || (len(c.Files) == 1 && c.Files[0] == "-")
}

// Animated reports whether the traversal animation is enabled.
func (c *Config) Animated() bool {
	return c.Debug > 0
}
