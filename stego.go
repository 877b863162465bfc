package cloak

import (
	"context"
	"fmt"
	"time"
)

// encodeState tracks how far an encode call progressed.
type encodeState int

const (
	encodeIdle encodeState = iota
	encodeCapacityChecked
	encodeFramed
	encodeEmbedded
)

func (s encodeState) String() string {
	switch s {
	case encodeCapacityChecked:
		return "capacity_checked"
	case encodeFramed:
		return "framed"
	case encodeEmbedded:
		return "embedded"
	default:
		return "idle"
	}
}

// decodeState tracks how far a decode call progressed.
type decodeState int

const (
	decodeIdle decodeState = iota
	decodePrefixRead
	decodeFrameParsed
	decodeDecrypted
)

func (s decodeState) String() string {
	switch s {
	case decodePrefixRead:
		return "prefix_read"
	case decodeFrameParsed:
		return "frame_parsed"
	case decodeDecrypted:
		return "decrypted"
	default:
		return "idle"
	}
}

// Encode embeds message, encrypted under passphrase, into a copy of c and
// returns the copy. c itself is never modified, so a failed call has no
// observable effect.
func Encode(ctx context.Context, c Carrier, message, passphrase []byte) (Carrier, error) {
	start := time.Now()
	state := encodeIdle
	frameSize := 0
	emitEncodeStart(ctx, c.Kind(), c.Format())

	out, err := func() (Carrier, error) {
		if err := validateEncodeInput(message, passphrase); err != nil {
			return nil, err
		}

		capacity := Capacity(c)
		if len(message) > capacity {
			return nil, newCapacityError(capacity, len(message))
		}
		state = encodeCapacityChecked

		frame, err := BuildFrame(message, passphrase)
		if err != nil {
			return nil, err
		}
		frameSize = frame.Len()
		state = encodeFramed

		out := c.Clone()
		if err := writeBytes(out.Channel(), frame.Bytes()); err != nil {
			return nil, fmt.Errorf("embed frame: %w", err)
		}
		state = encodeEmbedded
		return out, nil
	}()

	emitEncodeComplete(ctx, c.Kind(), c.Format(), state, len(message), frameSize, time.Since(start), err)
	return out, err
}

// Decode recovers the message embedded in c. Every failure after input
// validation is reported as ErrRecoveryFailed.
func Decode(ctx context.Context, c Carrier, passphrase []byte) ([]byte, error) {
	start := time.Now()
	state := decodeIdle
	emitDecodeStart(ctx, c.Kind(), c.Format())

	var (
		msg []byte
		err error
	)
	if len(passphrase) == 0 {
		err = newInputError("passphrase", "is empty")
	} else {
		msg, err = parseFrame(c.Channel(), passphrase, &state)
	}

	emitDecodeComplete(ctx, c.Kind(), c.Format(), state, len(msg), time.Since(start), err)
	return msg, err
}

func validateEncodeInput(message, passphrase []byte) error {
	if len(message) == 0 {
		return newInputError("message", "is empty")
	}
	if len(passphrase) == 0 {
		return newInputError("passphrase", "is empty")
	}
	return nil
}
