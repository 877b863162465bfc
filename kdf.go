package cloak

import (
	"golang.org/x/crypto/argon2"
)

// KeySize is the derived key length in bytes (AES-256).
const KeySize = 32

// Argon2Params configures Argon2id key derivation.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
}

// DefaultArgon2Params returns the fixed work factor used for every frame.
// The parameters are not recorded in the frame, so changing them breaks
// decoding of carriers written earlier.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    2,
		Memory:  19 * 1024, // 19 MiB
		Threads: 1,
	}
}

// DeriveKey turns a passphrase and salt into a 256-bit key using Argon2id
// with DefaultArgon2Params. The same inputs always yield the same key.
func DeriveKey(passphrase, salt []byte) [KeySize]byte {
	return deriveKeyWithParams(passphrase, salt, DefaultArgon2Params())
}

func deriveKeyWithParams(passphrase, salt []byte, params Argon2Params) [KeySize]byte {
	var key [KeySize]byte
	copy(key[:], argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Threads, KeySize))
	return key
}
