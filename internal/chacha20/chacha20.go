// Package chacha20 implements the ChaCha20 stream cipher as specified
// in RFC 8439.
package chacha20

import (
	"encoding/binary"
	"math/bits"
)

const (
	// KeySize is the size of a ChaCha20 key in bytes.
	KeySize = 32

	// NonceSize is the size of a ChaCha20 nonce in bytes.
	NonceSize = 12

	// BlockSize is the size of a single keystream block in bytes.
	BlockSize = 64
)

// The constant first 4 words of the ChaCha20 state: "expand 32-byte k".
const (
	j0 uint32 = 0x61707865 // expa
	j1 uint32 = 0x3320646e // nd 3
	j2 uint32 = 0x79622d32 // 2-by
	j3 uint32 = 0x6b206574 // te k
)

// quarterRound mixes 4 state words. It is applied 8 times per
// double-round, in columnar then diagonal groups.
func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)
	return a, b, c, d
}

// Block computes a single 64-byte keystream block from key, counter and
// nonce per RFC 8439 §2.3.
//
// Panics if key is not 32 bytes or nonce is not 12 bytes; callers are
// expected to have validated lengths already.
func Block(key []byte, counter uint32, nonce []byte) [BlockSize]byte {
	if len(key) != KeySize {
		panic("chacha20: wrong key size")
	}
	if len(nonce) != NonceSize {
		panic("chacha20: wrong nonce size")
	}

	var state [16]uint32

	state[0], state[1], state[2], state[3] = j0, j1, j2, j3
	for i := 0; i < 8; i++ {
		state[4+i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	state[12] = counter
	for i := 0; i < 3; i++ {
		state[13+i] = binary.LittleEndian.Uint32(nonce[4*i:])
	}

	working := state
	for i := 0; i < 10; i++ {
		// Column rounds.
		working[0], working[4], working[8], working[12] = quarterRound(working[0], working[4], working[8], working[12])
		working[1], working[5], working[9], working[13] = quarterRound(working[1], working[5], working[9], working[13])
		working[2], working[6], working[10], working[14] = quarterRound(working[2], working[6], working[10], working[14])
		working[3], working[7], working[11], working[15] = quarterRound(working[3], working[7], working[11], working[15])

		// Diagonal rounds.
		working[0], working[5], working[10], working[15] = quarterRound(working[0], working[5], working[10], working[15])
		working[1], working[6], working[11], working[12] = quarterRound(working[1], working[6], working[11], working[12])
		working[2], working[7], working[8], working[13] = quarterRound(working[2], working[7], working[8], working[13])
		working[3], working[4], working[9], working[14] = quarterRound(working[3], working[4], working[9], working[14])
	}

	var block [BlockSize]byte
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(block[4*i:], working[i]+state[i])
	}

	return block
}

// XORStream XORs data against the keystream derived from key, nonce and
// counter, returning a freshly allocated buffer of the same length. The
// counter advances by one per 64-byte block and wraps modulo 2^32.
//
// Encryption and decryption are the same operation.
func XORStream(key []byte, nonce []byte, counter uint32, data []byte) []byte {
	out := make([]byte, len(data))

	for i := 0; i < len(data); i += BlockSize {
		block := Block(key, counter, nonce)
		counter++ // wraps for inputs past 256 GiB, per the construction

		end := i + BlockSize
		if end > len(data) {
			end = len(data)
		}

		for j := i; j < end; j++ {
			out[j] = data[j] ^ block[j-i]
		}
	}

	return out
}
