package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/treecrypt/treecrypt/internal/batch"
	"github.com/treecrypt/treecrypt/internal/config"
)

// NewDecryptCommand creates the cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] paths...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files in place",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			cfg.Paths = args
			cfg.Decrypt = true

			if err := cfg.Validate(); err != nil {
				return err
			}

			return batch.Run(cfg)
		},
	}
}
