package cloak

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// WAVE format tags.
const (
	wavFormatPCM        = 0x0001
	wavFormatExtensible = 0xFFFE
)

// Errors describing why a RIFF file was rejected.
var (
	errNotWAV        = errors.New("not a RIFF/WAVE file")
	errMissingFmt    = errors.New("missing fmt chunk")
	errMissingData   = errors.New("missing data chunk")
	errNotPCM        = errors.New("audio is not uncompressed PCM")
	errBitDepth      = errors.New("only 16-bit PCM is supported")
	errNoChannels    = errors.New("fmt chunk declares zero channels")
	errShortFmtChunk = errors.New("fmt chunk too short")
)

// AudioCarrier is a WAV file holding 16-bit PCM samples.
//
// Embedding covers the low-order byte of every sample, in file order with
// channels interleaved. Everything outside those bytes, including headers
// and unknown chunks, is written back unchanged.
type AudioCarrier struct {
	raw        []byte
	dataOffset int
	dataSize   int

	sampleRate    uint32
	channels      uint16
	bitsPerSample uint16
}

// IsWAV reports whether data starts with a RIFF/WAVE header.
func IsWAV(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE"))
}

// DecodeAudioCarrier parses a RIFF/WAVE file. Only PCM (or extensible PCM)
// at 16 bits per sample is accepted.
func DecodeAudioCarrier(data []byte) (*AudioCarrier, error) {
	c, err := parseWAV(data)
	if err != nil {
		return nil, newCarrierError(KindAudio, FormatWAV, err)
	}
	return c, nil
}

func parseWAV(data []byte) (*AudioCarrier, error) {
	if !IsWAV(data) {
		return nil, errNotWAV
	}

	c := &AudioCarrier{raw: bytes.Clone(data)}
	var haveFmt, haveData bool

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int64(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		avail := int64(len(data) - body)

		switch id {
		case "fmt ":
			if size < 16 || size > avail {
				return nil, errShortFmtChunk
			}
			if err := c.parseFmt(data[body : body+int(size)]); err != nil {
				return nil, err
			}
			haveFmt = true
		case "data":
			// Streaming writers leave the size unset; clamp to what is present.
			if size > avail {
				size = avail
			}
			c.dataOffset = body
			c.dataSize = int(size)
			haveData = true
		}

		next := int64(body) + size + size&1
		if next > int64(len(data)) {
			break
		}
		pos = int(next)
	}

	if !haveFmt {
		return nil, errMissingFmt
	}
	if !haveData {
		return nil, errMissingData
	}
	return c, nil
}

func (c *AudioCarrier) parseFmt(chunk []byte) error {
	tag := binary.LittleEndian.Uint16(chunk[0:2])
	c.channels = binary.LittleEndian.Uint16(chunk[2:4])
	c.sampleRate = binary.LittleEndian.Uint32(chunk[4:8])
	c.bitsPerSample = binary.LittleEndian.Uint16(chunk[14:16])

	if tag == wavFormatExtensible {
		// cbSize(2) validBits(2) channelMask(4) subFormat GUID(16)
		if len(chunk) < 40 {
			return errShortFmtChunk
		}
		tag = binary.LittleEndian.Uint16(chunk[24:26])
	}

	switch {
	case tag != wavFormatPCM:
		return fmt.Errorf("%w (format tag 0x%04x)", errNotPCM, tag)
	case c.bitsPerSample != 16:
		return fmt.Errorf("%w (got %d)", errBitDepth, c.bitsPerSample)
	case c.channels == 0:
		return errNoChannels
	}
	return nil
}

// Kind implements Carrier.
func (c *AudioCarrier) Kind() CarrierKind { return KindAudio }

// Format implements Carrier.
func (c *AudioCarrier) Format() string { return FormatWAV }

// SampleRate returns the sample rate in Hz.
func (c *AudioCarrier) SampleRate() uint32 { return c.sampleRate }

// Channels returns the number of interleaved channels.
func (c *AudioCarrier) Channels() int { return int(c.channels) }

// BitsPerSample is always 16 for an accepted carrier.
func (c *AudioCarrier) BitsPerSample() int { return int(c.bitsPerSample) }

// Samples returns the total number of samples across all channels.
func (c *AudioCarrier) Samples() int { return c.dataSize / 2 }

// Duration returns the playing time of the sample data.
func (c *AudioCarrier) Duration() time.Duration {
	if c.sampleRate == 0 {
		return 0
	}
	frames := int64(c.Samples() / c.Channels())
	return time.Duration(frames) * time.Second / time.Duration(c.sampleRate)
}

// CapacityBits implements Carrier: one covered byte per sample.
func (c *AudioCarrier) CapacityBits() int {
	return c.Samples()
}

// Channel implements Carrier.
func (c *AudioCarrier) Channel() BitChannel {
	base := c.dataOffset
	return &lsbChannel{
		buf: c.raw,
		offset: func(slot int) int {
			return base + 2*slot
		},
		total: c.CapacityBits(),
	}
}

// Bytes implements Carrier.
func (c *AudioCarrier) Bytes() ([]byte, error) {
	out := make([]byte, len(c.raw))
	copy(out, c.raw)
	return out, nil
}

// Clone implements Carrier.
func (c *AudioCarrier) Clone() Carrier {
	clone := *c
	clone.raw = make([]byte, len(c.raw))
	copy(clone.raw, c.raw)
	return &clone
}
