// Package config holds the runtime configuration shared by all commands.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config is populated from flags and environment variables.
type Config struct {
	// Key is the hex-encoded 32-byte encryption key.
	Key string `mapstructure:"key" validate:"omitempty,len=64,hexadecimal"`

	// KeyFile is a path to a file holding the hex-encoded key.
	KeyFile string `mapstructure:"key-file"`

	// Parallel is the number of concurrent file workers.
	Parallel int `mapstructure:"parallel" validate:"min=1"`

	// Quiet suppresses non-error output.
	Quiet bool `mapstructure:"quiet"`

	// Dry previews the selected files without touching them.
	Dry bool `mapstructure:"dry"`

	// Stats prints a summary block after the run.
	Stats bool `mapstructure:"stats"`

	// PreserveTimestamps restores each file's mtime after rewriting.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Include and Exclude are find -path style glob patterns applied to
	// files found by walking directories.
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`

	// IncludeFrom and ExcludeFrom name JSONC files with further patterns.
	IncludeFrom string `mapstructure:"include-from"`
	ExcludeFrom string `mapstructure:"exclude-from"`

	// Decrypt selects decryption; set by the decrypt command.
	Decrypt bool

	// Paths are the positional file/directory arguments.
	Paths []string `validate:"min=1"`

	// Files is the resolved snapshot of files to process.
	Files []string
}

// Validate checks the configuration against the struct tags and the
// cross-field constraints. A bad key is rejected here, before any file
// is touched.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if (c.Key == "") == (c.KeyFile == "") {
		return errors.New("exactly one of --key and --key-file must be provided")
	}

	return nil
}
