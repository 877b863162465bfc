package cloak

import (
	"errors"
)

// errChannelExhausted is returned when a channel has no bits left.
var errChannelExhausted = errors.New("channel exhausted")

// BitChannel is a carrier-agnostic sequence of single-bit slots.
//
// Each slot is the least-significant bit of one covered carrier byte. Slots
// are visited in a fixed order that is identical for reading and writing;
// a channel starts at slot zero and advances by one on every read or write.
type BitChannel interface {
	// WriteBit stores bit (0 or 1) in the next slot.
	WriteBit(bit byte) error

	// ReadBit returns the bit held in the next slot.
	ReadBit() (byte, error)

	// RemainingBits returns the number of slots not yet visited.
	RemainingBits() int
}

// lsbChannel implements BitChannel over a byte buffer. offset maps a slot
// number to the buffer index whose LSB it owns.
type lsbChannel struct {
	buf    []byte
	offset func(slot int) int
	total  int
	pos    int
}

func (c *lsbChannel) WriteBit(bit byte) error {
	if c.pos >= c.total {
		return errChannelExhausted
	}
	i := c.offset(c.pos)
	c.buf[i] = (c.buf[i] &^ 1) | (bit & 1)
	c.pos++
	return nil
}

func (c *lsbChannel) ReadBit() (byte, error) {
	if c.pos >= c.total {
		return 0, errChannelExhausted
	}
	bit := c.buf[c.offset(c.pos)] & 1
	c.pos++
	return bit, nil
}

func (c *lsbChannel) RemainingBits() int {
	return c.total - c.pos
}

// writeBytes writes data most-significant bit first.
func writeBytes(ch BitChannel, data []byte) error {
	if ch.RemainingBits() < len(data)*8 {
		return errChannelExhausted
	}
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			if err := ch.WriteBit((b >> uint(i)) & 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// readBytes reads n bytes most-significant bit first.
func readBytes(ch BitChannel, n int) ([]byte, error) {
	if n < 0 || ch.RemainingBits() < n*8 {
		return nil, errChannelExhausted
	}
	out := make([]byte, n)
	for j := range out {
		var b byte
		for range 8 {
			bit, err := ch.ReadBit()
			if err != nil {
				return nil, err
			}
			b = b<<1 | bit
		}
		out[j] = b
	}
	return out, nil
}
