package cloak

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Frame layout sizes in bytes.
const (
	// SaltSize is the length of the random key-derivation salt.
	SaltSize = 16

	// LengthSize is the length of the big-endian ciphertext length field.
	LengthSize = 4

	// PrefixSize is the fixed part read before the ciphertext length is
	// known: salt, nonce and length.
	PrefixSize = SaltSize + NonceSize + LengthSize

	// FrameOverhead is every frame byte that is not message plaintext.
	FrameOverhead = PrefixSize + TagSize
)

// Frame is the self-describing payload embedded in a carrier.
//
// Wire layout: salt(16) ‖ nonce(12) ‖ len(4, big-endian) ‖ ciphertext‖tag.
type Frame struct {
	Salt   [SaltSize]byte
	Nonce  [NonceSize]byte
	Sealed []byte // ciphertext with the AEAD tag appended
}

// Len returns the encoded frame size.
func (f *Frame) Len() int {
	return PrefixSize + len(f.Sealed)
}

// Bytes returns the wire encoding of the frame.
func (f *Frame) Bytes() []byte {
	out := make([]byte, f.Len())
	n := copy(out, f.Salt[:])
	n += copy(out[n:], f.Nonce[:])
	binary.BigEndian.PutUint32(out[n:], uint32(len(f.Sealed))) // #nosec G115 -- bounded in buildFrame
	copy(out[PrefixSize:], f.Sealed)
	return out
}

// BuildFrame encrypts message under a key derived from passphrase with a
// fresh random salt and nonce.
func BuildFrame(message, passphrase []byte) (*Frame, error) {
	return buildFrame(rand.Reader, message, passphrase)
}

func buildFrame(random io.Reader, message, passphrase []byte) (*Frame, error) {
	if uint64(len(message))+TagSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: message overflows frame length field", ErrCapacityExceeded)
	}

	f := &Frame{}
	if _, err := io.ReadFull(random, f.Salt[:]); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if _, err := io.ReadFull(random, f.Nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := DeriveKey(passphrase, f.Salt[:])
	sealed, err := Seal(key, f.Nonce, message)
	if err != nil {
		return nil, err
	}
	f.Sealed = sealed
	return f, nil
}

// ParseFrame reads a frame from ch and returns the decrypted message.
//
// The declared ciphertext length is checked against the bits left in ch
// after the prefix, so a forged length can never cause an over-read. Every
// failure is reported as ErrRecoveryFailed.
func ParseFrame(ch BitChannel, passphrase []byte) ([]byte, error) {
	var state decodeState
	return parseFrame(ch, passphrase, &state)
}

// parseFrame advances state as each stage succeeds, so callers can report
// how far a failed decode got.
func parseFrame(ch BitChannel, passphrase []byte, state *decodeState) ([]byte, error) {
	f, declared, err := readPrefix(ch)
	if err != nil {
		return nil, newRecoveryError(err)
	}
	*state = decodePrefixRead

	if err := readSealed(ch, f, declared); err != nil {
		return nil, newRecoveryError(err)
	}
	*state = decodeFrameParsed

	msg, err := openFrame(f, passphrase)
	if err != nil {
		return nil, newRecoveryError(err)
	}
	*state = decodeDecrypted
	return msg, nil
}

// readPrefix reads salt, nonce and the declared ciphertext length.
func readPrefix(ch BitChannel) (*Frame, uint32, error) {
	prefix, err := readBytes(ch, PrefixSize)
	if err != nil {
		return nil, 0, errCorruptFrame
	}

	f := &Frame{}
	n := copy(f.Salt[:], prefix)
	n += copy(f.Nonce[:], prefix[n:])
	return f, binary.BigEndian.Uint32(prefix[n:]), nil
}

// readSealed reads the declared ciphertext into f. The declared length must
// fit in the bits left in ch.
func readSealed(ch BitChannel, f *Frame, declared uint32) error {
	bound := ch.RemainingBits() / 8
	if declared < TagSize || uint64(declared) > uint64(bound) {
		return errCorruptFrame
	}

	sealed, err := readBytes(ch, int(declared))
	if err != nil {
		return errCorruptFrame
	}
	f.Sealed = sealed
	return nil
}

// openFrame derives the key for f and authenticates its ciphertext.
func openFrame(f *Frame, passphrase []byte) ([]byte, error) {
	key := DeriveKey(passphrase, f.Salt[:])
	return Open(key, f.Nonce, f.Sealed)
}
