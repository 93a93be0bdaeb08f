package commands

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/argon2"
	"golang.org/x/term"

	"github.com/treecrypt/treecrypt/internal/aead"
)

// Argon2id parameters for passphrase-derived keys.
const (
	argonTime    = 4
	argonMemory  = 256 * 1024 // KiB
	argonThreads = 4
	saltSize     = 16
)

// NewKeygenCommand creates the cobra command for the keygen subcommand.
// It prints a random hex-encoded 32-byte key, or derives one from a
// passphrase with Argon2id.
func NewKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen",
		Aliases: []string{"gen"},
		Short:   "Generate a 32-byte encryption key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromPassphrase, err := cmd.Flags().GetBool("passphrase")
			if err != nil {
				return err
			}

			if !fromPassphrase {
				key := make([]byte, aead.KeySize)
				if _, err := rand.Read(key); err != nil {
					return fmt.Errorf("generating key: %w", err)
				}

				fmt.Println(hex.EncodeToString(key)) //nolint:forbidigo

				return nil
			}

			saltHex, err := cmd.Flags().GetString("salt")
			if err != nil {
				return err
			}

			key, salt, err := deriveKey(saltHex)
			if err != nil {
				return err
			}

			// The salt goes to stderr so the key alone can be captured
			// from stdout.
			fmt.Fprintf(os.Stderr, "Salt: %s\n", hex.EncodeToString(salt))
			fmt.Println(hex.EncodeToString(key)) //nolint:forbidigo

			return nil
		},
	}

	cmd.Flags().Bool("passphrase", false, "Derive the key from a passphrase prompted on the terminal")
	cmd.Flags().String("salt", "", "Hex-encoded Argon2id salt; random when omitted (printed to stderr)")

	return cmd
}

// deriveKey prompts for a passphrase without echo and stretches it with
// Argon2id. The same passphrase and salt always yield the same key.
func deriveKey(saltHex string) (key, salt []byte, err error) {
	if saltHex != "" {
		salt, err = hex.DecodeString(saltHex)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding salt: %w", err)
		}
	} else {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, fmt.Errorf("generating salt: %w", err)
		}
	}

	fmt.Fprint(os.Stderr, "Passphrase: ")

	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, nil, fmt.Errorf("reading passphrase: %w", err)
	}

	if len(passphrase) == 0 {
		return nil, nil, errors.New("empty passphrase")
	}

	key = argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, aead.KeySize)

	return key, salt, nil
}
