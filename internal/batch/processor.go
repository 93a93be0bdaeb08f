// Package batch drives concurrent in-place encryption and decryption of
// a fixed snapshot of files.
package batch

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/treecrypt/treecrypt/internal/aead"
	"github.com/treecrypt/treecrypt/internal/config"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options.
	cfg *config.Config

	// key stores the raw 32-byte key, read-only for the whole run.
	key []byte

	// results channels processing outcomes to the reporter goroutine.
	results chan Result
}

// NewProcessor creates a Processor with the given configuration and
// resolves the key. A key of the wrong length is rejected here, before
// any worker is dispatched.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	key, err := resolveKey(cfg)
	if err != nil {
		return nil, err
	}

	return &Processor{
		cfg:     cfg,
		key:     key,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// resolveKey reads the hex-encoded key from the flag or the key file.
func resolveKey(cfg *config.Config) ([]byte, error) {
	encoded := cfg.Key

	if cfg.KeyFile != "" {
		raw, err := os.ReadFile(cfg.KeyFile) //nolint:gosec // path is from user-supplied config
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		encoded = strings.TrimSpace(string(raw))
	}

	key, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}

	if len(key) != aead.KeySize {
		return nil, fmt.Errorf("key must be %d bytes (%d hex characters), got %d bytes",
			aead.KeySize, 2*aead.KeySize, len(key))
	}

	return key, nil
}

// ProcessFiles concurrently processes the resolved file snapshot,
// encrypting or decrypting in place based on the configuration.
// A failing file never stops the others; every submitted file is
// attempted and its outcome reported. Returns the number of processed
// and errored files, the total bytes written, and the first error.
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Path, result.Error)

				continue
			}

			processed++
			totalSize += result.Size

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q\n", result.Path) //nolint:forbidigo
			}
		}
	}()

	for _, file := range p.cfg.Files {
		file := file

		group.Go(func() error {
			size, err := p.processFile(file)
			if err != nil {
				p.results <- Result{Path: file, Error: err}

				return err
			}

			p.results <- Result{Path: file, Size: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for the reporter to finish.

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// processFile encrypts or decrypts a single file in place.
func (p *Processor) processFile(path string) (int64, error) {
	if p.cfg.Decrypt {
		return DecryptFile(path, p.key, p.cfg.PreserveTimestamps)
	}

	return EncryptFile(path, p.key, p.cfg.PreserveTimestamps)
}
