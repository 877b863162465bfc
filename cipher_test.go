package cloak

import (
	"bytes"
	"errors"
	"testing"
)

func testKey(b byte) [KeySize]byte {
	var k [KeySize]byte
	for i := range k {
		k[i] = b + byte(i)
	}
	return k
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey(1)
	var nonce [NonceSize]byte
	plaintext := []byte("hello, world!")

	sealed, err := Seal(key, nonce, plaintext)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	if len(sealed) != len(plaintext)+TagSize {
		t.Errorf("len(sealed) = %d, want %d", len(sealed), len(plaintext)+TagSize)
	}

	if bytes.Contains(sealed, plaintext) {
		t.Error("ciphertext should not contain plaintext")
	}

	opened, err := Open(key, nonce, sealed)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if !bytes.Equal(plaintext, opened) {
		t.Errorf("round-trip failed: got %q, want %q", opened, plaintext)
	}
}

func TestOpen_FailsClosed(t *testing.T) {
	key := testKey(1)
	var nonce [NonceSize]byte
	sealed, _ := Seal(key, nonce, []byte("secret"))

	flipped := bytes.Clone(sealed)
	flipped[0] ^= 0x01

	otherNonce := nonce
	otherNonce[0] = 1

	tests := []struct {
		name   string
		key    [KeySize]byte
		nonce  [NonceSize]byte
		sealed []byte
	}{
		{"wrong key", testKey(2), nonce, sealed},
		{"wrong nonce", key, otherNonce, sealed},
		{"bit flip", key, nonce, flipped},
		{"truncated", key, nonce, sealed[:len(sealed)-1]},
		{"shorter than tag", key, nonce, sealed[:TagSize-1]},
		{"empty", key, nonce, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := Open(tt.key, tt.nonce, tt.sealed)
			if !errors.Is(err, errAuthentication) {
				t.Errorf("Open() error = %v, want errAuthentication", err)
			}
			if pt != nil {
				t.Error("Open() must not return plaintext on failure")
			}
		})
	}
}
