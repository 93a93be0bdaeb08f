package batch

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/treecrypt/treecrypt/internal/aead"
	"github.com/treecrypt/treecrypt/internal/fileutil"
)

// Overhead is the size added to a file by encryption: a 12-byte nonce
// before the ciphertext and a 16-byte tag after it.
const Overhead = aead.NonceSize + aead.TagSize

// ErrTooShort indicates a file to be decrypted cannot even contain the
// nonce and tag.
var ErrTooShort = errors.New("file too short for nonce and tag")

// EncryptFile replaces the contents of path with
// nonce || ciphertext || tag under a fresh random nonce. The new
// contents are written to a sibling temp file and renamed over the
// original, so a crash mid-write cannot corrupt the file.
func EncryptFile(path string, key []byte, preserveTimestamps bool) (size int64, err error) {
	plaintext, err := os.ReadFile(path) //nolint:gosec // path comes from the resolved file list
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	nonce := make([]byte, aead.NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return 0, fmt.Errorf("generating nonce: %w", err)
	}

	ciphertext, tag := aead.Seal(key, nonce, plaintext)

	rw, err := fileutil.NewRewrite(path)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer rw.CleanupOnError(&err)

	for _, part := range [][]byte{nonce, ciphertext, tag[:]} {
		if err := rw.Write(part); err != nil {
			return 0, err
		}
	}

	size, err = rw.Commit(preserveTimestamps)
	if err != nil {
		return 0, err
	}

	return size, nil
}

// DecryptFile authenticates and decrypts the contents of path, restoring
// the original plaintext. The tag is verified before any byte is written;
// on a tag mismatch or format error the file is left untouched.
func DecryptFile(path string, key []byte, preserveTimestamps bool) (size int64, err error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the resolved file list
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	if len(data) < Overhead {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooShort, len(data))
	}

	nonce := data[:aead.NonceSize]
	ciphertext := data[aead.NonceSize : len(data)-aead.TagSize]
	tag := data[len(data)-aead.TagSize:]

	plaintext, err := aead.Open(key, nonce, ciphertext, tag)
	if err != nil {
		return 0, err
	}

	rw, err := fileutil.NewRewrite(path)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer rw.CleanupOnError(&err)

	if err := rw.Write(plaintext); err != nil {
		return 0, err
	}

	size, err = rw.Commit(preserveTimestamps)
	if err != nil {
		return 0, err
	}

	return size, nil
}
