// Package aead composes the ChaCha20 stream cipher and the Poly1305 MAC
// into the RFC 8439 authenticated encryption construction, with an empty
// associated-data field.
//
// The output interoperates with any RFC 8439 implementation given empty
// additional data.
package aead

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"github.com/treecrypt/treecrypt/internal/chacha20"
	"github.com/treecrypt/treecrypt/internal/poly1305"
)

const (
	// KeySize is the size of an encryption key in bytes.
	KeySize = chacha20.KeySize

	// NonceSize is the size of a nonce in bytes.
	NonceSize = chacha20.NonceSize

	// TagSize is the size of an authentication tag in bytes.
	TagSize = poly1305.TagSize
)

// ErrTagMismatch indicates the ciphertext or tag was altered, or was
// produced under a different key or nonce.
var ErrTagMismatch = errors.New("message authentication failed")

// Seal encrypts plaintext and returns the ciphertext and its tag.
//
// The nonce must never repeat for two different plaintexts under the same
// key. Panics if key or nonce have the wrong length; callers validate
// key material before reaching this layer, and nonces are generated
// internally at the correct size.
func Seal(key, nonce, plaintext []byte) (ciphertext []byte, tag [TagSize]byte) {
	checkSizes(key, nonce)

	ciphertext = chacha20.XORStream(key, nonce, 1, plaintext)
	tag = poly1305.Sum(oneTimeKey(key, nonce), transcript(ciphertext))

	return ciphertext, tag
}

// Open verifies tag over ciphertext and, only on success, decrypts and
// returns the plaintext. Returns ErrTagMismatch otherwise.
//
// Panics on wrong key or nonce lengths, like Seal.
func Open(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	checkSizes(key, nonce)

	want := poly1305.Sum(oneTimeKey(key, nonce), transcript(ciphertext))

	// No plaintext leaves this function before the tag has been checked,
	// in constant time over the full 16 bytes.
	if subtle.ConstantTimeCompare(want[:], tag) != 1 {
		return nil, ErrTagMismatch
	}

	return chacha20.XORStream(key, nonce, 1, ciphertext), nil
}

// oneTimeKey derives the per-message Poly1305 key: the first 32 bytes of
// keystream block 0. Block counter 1 onward belongs to the message.
func oneTimeKey(key, nonce []byte) []byte {
	block := chacha20.Block(key, 0, nonce)

	return block[:poly1305.KeySize]
}

// transcript builds the MAC input: ciphertext zero-padded to a 16-byte
// boundary, then the two little-endian 64-bit length fields — AAD length
// (always zero here) and ciphertext length.
func transcript(ciphertext []byte) []byte {
	pad := (16 - len(ciphertext)%16) % 16

	data := make([]byte, len(ciphertext)+pad+16)
	copy(data, ciphertext)
	binary.LittleEndian.PutUint64(data[len(ciphertext)+pad+8:], uint64(len(ciphertext)))

	return data
}

func checkSizes(key, nonce []byte) {
	if len(key) != KeySize {
		panic("aead: wrong key size")
	}

	if len(nonce) != NonceSize {
		panic("aead: wrong nonce size")
	}
}
