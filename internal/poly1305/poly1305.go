// Package poly1305 implements the Poly1305 one-time message
// authentication code from RFC 8439 §2.5.
//
// The polynomial is evaluated with arbitrary-precision integers. That is
// deliberately the straightforward construction from the RFC: throughput
// is bounded by file I/O in this tool, and the fixed-width limb variants
// trade a lot of subtlety for speed that is not needed here.
package poly1305

import "math/big"

const (
	// KeySize is the size of a one-time Poly1305 key in bytes: 16 bytes
	// of "r" followed by 16 bytes of "s".
	KeySize = 32

	// TagSize is the size of an authentication tag in bytes.
	TagSize = 16
)

// chunkSize is the number of message bytes absorbed per polynomial term.
const chunkSize = 16

var (
	// prime is 2^130 - 5.
	prime = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 130), big.NewInt(5))

	// rClamp masks the bits of "r" the algorithm requires to be clear.
	rClamp, _ = new(big.Int).SetString("0ffffffc0ffffffc0ffffffc0fffffff", 16)

	// tagMask reduces the final accumulator modulo 2^128.
	tagMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Sum computes the 16-byte Poly1305 tag of msg under key.
//
// The key is a one-time key: authenticating two different messages under
// the same key forfeits all security. Panics if key is not 32 bytes.
func Sum(key []byte, msg []byte) [TagSize]byte {
	if len(key) != KeySize {
		panic("poly1305: wrong key size")
	}

	r := leInt(key[:16])
	r.And(r, rClamp)

	s := leInt(key[16:32])

	acc := new(big.Int)

	for len(msg) > 0 {
		n := len(msg)
		if n > chunkSize {
			n = chunkSize
		}

		// The 0x01 terminator encodes the true chunk length; short final
		// chunks are not zero padded.
		chunk := make([]byte, n+1)
		copy(chunk, msg[:n])
		chunk[n] = 0x01

		acc.Add(acc, leInt(chunk))
		acc.Mul(acc, r)
		acc.Mod(acc, prime)

		msg = msg[n:]
	}

	acc.Add(acc, s)
	acc.And(acc, tagMask)

	var tag [TagSize]byte
	putLE(tag[:], acc)

	return tag
}

// leInt interprets b as a little-endian unsigned integer.
func leInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}

	return new(big.Int).SetBytes(be)
}

// putLE serializes v little-endian into dst, which must be large enough.
func putLE(dst []byte, v *big.Int) {
	be := make([]byte, len(dst))
	v.FillBytes(be)

	for i, b := range be {
		dst[len(dst)-1-i] = b
	}
}
