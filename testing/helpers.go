// Package testing provides fixture carriers and helpers for cloak tests.
package testing

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

// Passphrase is the default passphrase used in tests.
const Passphrase = "correct horse battery staple"

// Message returns an n-byte ASCII message.
func Message(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789 "
	var sb strings.Builder
	sb.Grow(n)
	for i := range n {
		sb.WriteByte(alphabet[i%len(alphabet)])
	}
	return sb.String()
}

// NRGBA returns a w×h opaque image filled with a colour gradient.
func NRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7),
				G: uint8(y * 13),
				B: uint8(x ^ y),
				A: 0xff,
			})
		}
	}
	return img
}

// TranslucentNRGBA returns a w×h image whose alpha cycles through every
// value, including fully transparent pixels.
func TranslucentNRGBA(w, h int) *image.NRGBA {
	img := NRGBA(w, h)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(i / 4)
	}
	return img
}

// PNG encodes an opaque w×h gradient image as PNG.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	return EncodePNG(t, NRGBA(w, h))
}

// EncodePNG encodes img as PNG.
func EncodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("png.Encode() error: %v", err)
	}
	return buf.Bytes()
}

// BMP encodes an opaque w×h gradient image as BMP.
func BMP(t testing.TB, w, h int) []byte {
	t.Helper()
	return EncodeBMP(t, NRGBA(w, h))
}

// EncodeBMP encodes img as BMP. Non-opaque images are written with 32-bit
// pixels.
func EncodeBMP(t testing.TB, img image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := bmp.Encode(buf, img); err != nil {
		t.Fatalf("bmp.Encode() error: %v", err)
	}
	return buf.Bytes()
}

// WAVSpec describes a synthetic WAV file.
type WAVSpec struct {
	FormatTag     uint16 // 1 for PCM, 0xFFFE for extensible
	SubFormat     uint16 // PCM sub-format tag when FormatTag is extensible
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
	Samples       int  // total samples across all channels
	ExtraChunk    bool // insert a LIST chunk before and after data
}

// PCM16 returns a WAVSpec for 16-bit PCM audio.
func PCM16(samples int, channels uint16) WAVSpec {
	return WAVSpec{
		FormatTag:     1,
		Channels:      channels,
		SampleRate:    44100,
		BitsPerSample: 16,
		Samples:       samples,
	}
}

// WAV builds a 16-bit PCM WAV file holding samples samples.
func WAV(t testing.TB, samples int, channels uint16) []byte {
	t.Helper()
	return BuildWAV(t, PCM16(samples, channels))
}

// BuildWAV builds a WAV file from spec with a deterministic waveform.
func BuildWAV(t testing.TB, spec WAVSpec) []byte {
	t.Helper()

	bytesPerSample := int(spec.BitsPerSample) / 8
	if bytesPerSample == 0 {
		bytesPerSample = 1
	}

	data := make([]byte, spec.Samples*bytesPerSample)
	for i := range data {
		data[i] = uint8(i*31 + i/7)
	}

	fmtChunk := new(bytes.Buffer)
	write := func(v any) {
		if err := binary.Write(fmtChunk, binary.LittleEndian, v); err != nil {
			t.Fatalf("binary.Write() error: %v", err)
		}
	}
	blockAlign := spec.Channels * uint16(bytesPerSample)
	write(spec.FormatTag)
	write(spec.Channels)
	write(spec.SampleRate)
	write(spec.SampleRate * uint32(blockAlign))
	write(blockAlign)
	write(spec.BitsPerSample)
	if spec.FormatTag == 0xFFFE {
		write(uint16(22))
		write(spec.BitsPerSample)
		write(uint32(0))
		write(spec.SubFormat)
		fmtChunk.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})
	}

	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	writeChunk(body, "fmt ", fmtChunk.Bytes())
	if spec.ExtraChunk {
		writeChunk(body, "LIST", []byte("INFOISFT\x06\x00\x00\x00cloak\x00"))
	}
	writeChunk(body, "data", data)
	if spec.ExtraChunk {
		writeChunk(body, "LIST", []byte("INFOICMT\x04\x00\x00\x00end\x00"))
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	_ = binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// writeChunk writes a RIFF chunk, padding odd-sized bodies.
func writeChunk(w *bytes.Buffer, id string, body []byte) {
	w.WriteString(id)
	_ = binary.Write(w, binary.LittleEndian, uint32(len(body)))
	w.Write(body)
	if len(body)%2 == 1 {
		w.WriteByte(0)
	}
}
