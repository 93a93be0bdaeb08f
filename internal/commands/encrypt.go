package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/treecrypt/treecrypt/internal/batch"
	"github.com/treecrypt/treecrypt/internal/config"
)

// NewEncryptCommand creates the cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] paths...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files in place",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			cfg.Paths = args

			if err := cfg.Validate(); err != nil {
				return err
			}

			return batch.Run(cfg)
		},
	}
}
