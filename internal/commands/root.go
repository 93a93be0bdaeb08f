package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/treecrypt/treecrypt/internal/config"
)

// envPrefix is the prefix for environment variable configuration, e.g.
// TREECRYPT_KEY_FILE for --key-file.
const envPrefix = "TREECRYPT"

// NewRootCommand creates the root command with the flags common to all
// subcommands and wires flag/environment binding.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "treecrypt [flags] command [flags]",
		Short: "Batch file encryption with ChaCha20-Poly1305",
		Long: `Encrypts and decrypts directory trees in place with ChaCha20-Poly1305
(RFC 8439, empty AAD). Each file gets a fresh random nonce and is
rewritten atomically as nonce || ciphertext || tag.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetEnvPrefix(envPrefix)
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()

			return viper.BindPFlags(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()

	flags.StringP("key", "k", "", "Encryption key (32 bytes, hex-encoded)")
	flags.StringP("key-file", "f", "", "Path to a file with the hex-encoded encryption key")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("dry", false, "List the files that would be processed and exit")
	flags.Bool("stats", false, "Print a summary after the run")
	flags.Bool("preserve-timestamps", false, "Restore each file's modification time after rewriting")
	flags.StringSlice("include", nil, "Glob patterns (find -path semantics) a walked file must match")
	flags.StringSlice("exclude", nil, "Glob patterns excluding walked files; excludes win over includes")
	flags.String("include-from", "", "JSONC file with additional include patterns")
	flags.String("exclude-from", "", "JSONC file with additional exclude patterns")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewKeygenCommand(),
	)

	return root
}

// Execute builds the command tree and runs it.
func Execute(version string) error {
	var cfg config.Config

	return NewRootCommand(&cfg, version).Execute()
}
