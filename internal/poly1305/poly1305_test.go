package poly1305

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decoding hex: %v", err)
	}

	return b
}

// RFC 8439 §2.5.2.
func TestSum(t *testing.T) {
	key := fromHex(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	msg := []byte("Cryptographic Forum Research Group")
	want := fromHex(t, "a8061dc1305136c6c22b8baf0c0127a9")

	tag := Sum(key, msg)

	if !bytes.Equal(tag[:], want) {
		t.Errorf("Sum() = %x, want %x", tag[:], want)
	}
}

// With no message chunks the accumulator stays zero and the tag is
// exactly "s", the second half of the key.
func TestSumEmptyMessage(t *testing.T) {
	key := fromHex(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")

	tag := Sum(key, nil)

	if !bytes.Equal(tag[:], key[16:]) {
		t.Errorf("Sum(empty) = %x, want %x", tag[:], key[16:])
	}
}

func TestSumChunkBoundaries(t *testing.T) {
	key := fromHex(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")

	// Tags for messages of every length around the 16-byte chunk
	// boundary must all differ.
	seen := make(map[[TagSize]byte]int)

	for n := 0; n <= 33; n++ {
		msg := bytes.Repeat([]byte{0xab}, n)

		tag := Sum(key, msg)
		if prev, ok := seen[tag]; ok {
			t.Errorf("lengths %d and %d produced the same tag", prev, n)
		}

		seen[tag] = n
	}
}

func TestSumBadKeySize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("should have panicked")
		}
	}()

	Sum(make([]byte, 16), []byte("msg"))
}
