package cloak

import (
	"bytes"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x5a}, SaltSize)

	k1 := DeriveKey([]byte("passphrase"), salt)
	k2 := DeriveKey([]byte("passphrase"), salt)

	if k1 != k2 {
		t.Error("same passphrase and salt should produce the same key")
	}
}

func TestDeriveKey_SaltAndPassphraseMatter(t *testing.T) {
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	base := DeriveKey([]byte("passphrase"), salt1)

	if base == DeriveKey([]byte("passphrase"), salt2) {
		t.Error("different salts should produce different keys")
	}
	if base == DeriveKey([]byte("passphrasf"), salt1) {
		t.Error("different passphrases should produce different keys")
	}
}

func TestDefaultArgon2Params(t *testing.T) {
	params := DefaultArgon2Params()

	if params.Time != 2 {
		t.Errorf("Time = %d, want 2", params.Time)
	}
	if params.Memory != 19*1024 {
		t.Errorf("Memory = %d, want %d", params.Memory, 19*1024)
	}
	if params.Threads != 1 {
		t.Errorf("Threads = %d, want 1", params.Threads)
	}
}

func TestDeriveKeyWithParams_MatchesDefault(t *testing.T) {
	salt := bytes.Repeat([]byte{0x33}, SaltSize)

	if DeriveKey([]byte("pw"), salt) != deriveKeyWithParams([]byte("pw"), salt, DefaultArgon2Params()) {
		t.Error("DeriveKey should use DefaultArgon2Params")
	}

	cheap := Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1}
	if DeriveKey([]byte("pw"), salt) == deriveKeyWithParams([]byte("pw"), salt, cheap) {
		t.Error("work factor should change the derived key")
	}
}
