package cloak

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// AEAD sizes for AES-256-GCM.
const (
	NonceSize = 12
	TagSize   = 16
)

// newGCM returns an AES-256-GCM AEAD for key.
func newGCM(key [KeySize]byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext and returns ciphertext with the 16-byte tag
// appended.
func Seal(key [KeySize]byte, nonce [NonceSize]byte, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return gcm.Seal(nil, nonce[:], plaintext, nil), nil
}

// Open verifies and decrypts ciphertext‖tag. Any mismatch returns the same
// authentication error and no plaintext.
func Open(key [KeySize]byte, nonce [NonceSize]byte, sealed []byte) ([]byte, error) {
	if len(sealed) < TagSize {
		return nil, errAuthentication
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, errAuthentication
	}

	plaintext, err := gcm.Open(nil, nonce[:], sealed, nil)
	if err != nil {
		return nil, errAuthentication
	}
	return plaintext, nil
}
