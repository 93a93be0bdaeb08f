package chacha20

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

// RFC 8439 §2.1.1.
func TestQuarterRound(t *testing.T) {
	a, b, c, d := quarterRound(0x11111111, 0x01020304, 0x9b8d6f43, 0x01234567)

	if a != 0xea2a92f4 || b != 0xcb1cf8ce || c != 0x4581472e || d != 0x5881c4bb {
		t.Errorf("quarterRound() = %08x %08x %08x %08x", a, b, c, d)
	}
}

// RFC 8439 §2.3.2.
func TestBlock(t *testing.T) {
	key := fromHex(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	nonce := fromHex(t, "000000090000004a00000000")
	want := fromHex(t,
		"10f1e7e4d13b5915500fdd1fa32071c4"+
			"c7d1f4c733c068030422aa9ac3d46c4e"+
			"d2826446079faa0914c2d705d98b02a2"+
			"b5129cd1de164eb9cbd083e8a2503c4e")

	block := Block(key, 1, nonce)

	if !bytes.Equal(block[:], want) {
		t.Errorf("Block() = %x, want %x", block[:], want)
	}
}

func TestBlockDeterministic(t *testing.T) {
	key := fromHex(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	nonce := fromHex(t, "000000090000004a00000000")

	first := Block(key, 7, nonce)
	second := Block(key, 7, nonce)

	if first != second {
		t.Error("Block() is not deterministic")
	}
}

// RFC 8439 §2.4.2.
func TestXORStream(t *testing.T) {
	key := fromHex(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	nonce := fromHex(t, "000000000000004a00000000")
	plaintext := []byte("Ladies and Gentlemen of the class of '99: " +
		"If I could offer you only one tip for the future, sunscreen would be it.")
	want := fromHex(t,
		"6e2e359a2568f98041ba0728dd0d6981"+
			"e97e7aec1d4360c20a27afccfd9fae0b"+
			"f91b65c5524733ab8f593dabcd62b357"+
			"1639d624e65152ab8f530c359f0861d8"+
			"07ca0dbf500d6a6156a38e088a22b65e"+
			"52bc514d16ccf806818ce91ab7793736"+
			"5af90bbf74a35be6b40b8eedf2785e42"+
			"874d")

	ciphertext := XORStream(key, nonce, 1, plaintext)

	if !bytes.Equal(ciphertext, want) {
		t.Errorf("XORStream() = %x, want %x", ciphertext, want)
	}

	recovered := XORStream(key, nonce, 1, ciphertext)

	if !bytes.Equal(recovered, plaintext) {
		t.Errorf("XORStream() round trip = %q, want %q", recovered, plaintext)
	}
}

func TestXORStreamEmpty(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)

	if out := XORStream(key, nonce, 1, nil); len(out) != 0 {
		t.Errorf("XORStream() on empty input produced %d bytes", len(out))
	}
}

// The counter must wrap modulo 2^32 rather than panic.
func TestXORStreamCounterWrap(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	data := make([]byte, 3*BlockSize)

	out := XORStream(key, nonce, 0xffffffff, data)

	// Blocks at counters 0xffffffff, 0 and 1 must match their
	// individually generated counterparts.
	for i, counter := range []uint32{0xffffffff, 0, 1} {
		block := Block(key, counter, nonce)
		if !bytes.Equal(out[i*BlockSize:(i+1)*BlockSize], block[:]) {
			t.Errorf("block %d does not match counter %#x", i, counter)
		}
	}
}

func TestBlockBadLengths(t *testing.T) {
	t.Run("short key", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("should have panicked")
			}
		}()

		Block(make([]byte, 16), 0, make([]byte, NonceSize))
	})

	t.Run("short nonce", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("should have panicked")
			}
		}()

		Block(make([]byte, KeySize), 0, make([]byte, 8))
	})
}
