// Command treecrypt encrypts and decrypts directory trees in place with
// ChaCha20-Poly1305.
package main

import (
	"fmt"
	"os"

	"github.com/treecrypt/treecrypt/internal/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "treecrypt: %v\n", err)
		os.Exit(1)
	}
}
