// Package cloak hides passphrase-protected messages in the least-significant
// bits of images and WAV audio.
//
// A message is encrypted with AES-256-GCM under a key derived from the
// passphrase with Argon2id, wrapped in a frame, and written one bit per
// covered carrier byte. Only the lowest bit of a covered byte ever changes,
// so no pixel channel or sample moves by more than one step.
//
// # Frame
//
// The embedded payload is:
//
//	salt(16) ‖ nonce(12) ‖ length(4, big-endian) ‖ ciphertext‖tag(length)
//
// Frame bytes are written most-significant bit first. The overhead is 48
// bytes, so capacity is floor(bits/8) - 48.
//
// # Carriers
//
// Images (PNG, BMP, GIF, JPEG) are normalised to 8-bit RGBA. Bits go into R,
// G and B of each pixel, row by row; alpha is never touched. Encoded images
// are always written losslessly: BMP as BMP, everything else as PNG.
//
// WAV files must hold 16-bit PCM. Bits go into the low-order byte of every
// sample in file order. All other bytes of the file are returned unchanged.
//
// # Basic Usage
//
//	capacity, _ := cloak.ImageCapacity(ctx, png)
//
//	out, err := cloak.EncodeImage(ctx, png, "meet at noon", "correct horse")
//	if errors.Is(err, cloak.ErrCapacityExceeded) {
//	    // message too long for this image
//	}
//
//	msg, err := cloak.DecodeImage(ctx, out, "correct horse")
//	if errors.Is(err, cloak.ErrRecoveryFailed) {
//	    // wrong passphrase, or nothing embedded
//	}
//
// # Errors
//
// Failures fall into four categories, each a sentinel for errors.Is:
//
//   - ErrUnsupportedCarrier: bytes are not a supported image or WAV/PCM file
//   - ErrCapacityExceeded: message does not fit
//   - ErrInvalidInput: empty message or passphrase, or non-UTF-8 text
//   - ErrRecoveryFailed: any decode failure, cause deliberately hidden
//
// # Concurrency
//
// Every function is a synchronous computation over buffers it owns. No state
// is shared between calls, so calls may run concurrently without
// coordination. The context is used only to emit capitan events.
package cloak

import (
	"context"
	"unicode/utf8"
)

// ImageCapacity returns the largest message, in bytes, that the image can
// hold.
func ImageCapacity(ctx context.Context, image []byte) (int, error) {
	c, err := DecodeImageCarrier(image)
	if err != nil {
		return 0, err
	}
	n := Capacity(c)
	emitCapacityComputed(ctx, c.Kind(), c.Format(), n)
	return n, nil
}

// AudioCapacity returns the largest message, in bytes, that the WAV file can
// hold.
func AudioCapacity(ctx context.Context, wav []byte) (int, error) {
	c, err := DecodeAudioCarrier(wav)
	if err != nil {
		return 0, err
	}
	n := Capacity(c)
	emitCapacityComputed(ctx, c.Kind(), c.Format(), n)
	return n, nil
}

// EncodeImage hides message in image and returns the re-encoded image, with
// the same dimensions, in a lossless format.
func EncodeImage(ctx context.Context, image []byte, message, passphrase string) ([]byte, error) {
	if err := validateText(message, passphrase); err != nil {
		return nil, err
	}
	c, err := DecodeImageCarrier(image)
	if err != nil {
		return nil, err
	}
	return encodeCarrier(ctx, c, message, passphrase)
}

// DecodeImage recovers the message hidden in image.
func DecodeImage(ctx context.Context, image []byte, passphrase string) (string, error) {
	if passphrase == "" {
		return "", newInputError("passphrase", "is empty")
	}
	c, err := DecodeImageCarrier(image)
	if err != nil {
		return "", err
	}
	return decodeCarrier(ctx, c, passphrase)
}

// EncodeAudio hides message in a 16-bit PCM WAV file. The result has the same
// sample rate, channel count and bit depth.
func EncodeAudio(ctx context.Context, wav []byte, message, passphrase string) ([]byte, error) {
	if err := validateText(message, passphrase); err != nil {
		return nil, err
	}
	c, err := DecodeAudioCarrier(wav)
	if err != nil {
		return nil, err
	}
	return encodeCarrier(ctx, c, message, passphrase)
}

// DecodeAudio recovers the message hidden in a WAV file.
func DecodeAudio(ctx context.Context, wav []byte, passphrase string) (string, error) {
	if passphrase == "" {
		return "", newInputError("passphrase", "is empty")
	}
	c, err := DecodeAudioCarrier(wav)
	if err != nil {
		return "", err
	}
	return decodeCarrier(ctx, c, passphrase)
}

func encodeCarrier(ctx context.Context, c Carrier, message, passphrase string) ([]byte, error) {
	out, err := Encode(ctx, c, []byte(message), []byte(passphrase))
	if err != nil {
		return nil, err
	}
	return out.Bytes()
}

func decodeCarrier(ctx context.Context, c Carrier, passphrase string) (string, error) {
	msg, err := Decode(ctx, c, []byte(passphrase))
	if err != nil {
		return "", err
	}
	// Authenticated but not text: it was not written by the text API.
	if !utf8.Valid(msg) {
		return "", newRecoveryError(errCorruptFrame)
	}
	return string(msg), nil
}

// validateText rejects empty or non-UTF-8 message text and empty
// passphrases before any carrier or cryptographic work.
func validateText(message, passphrase string) error {
	switch {
	case message == "":
		return newInputError("message", "is empty")
	case !utf8.ValidString(message):
		return newInputError("message", "is not valid UTF-8")
	case passphrase == "":
		return newInputError("passphrase", "is empty")
	}
	return nil
}

// CarrierInfo describes a carrier and how much it can hold.
type CarrierInfo struct {
	Kind          CarrierKind `json:"kind" yaml:"kind" xml:"kind" msgpack:"kind"`
	Format        string      `json:"format" yaml:"format" xml:"format" msgpack:"format"`
	OutputFormat  string      `json:"output_format" yaml:"output_format" xml:"output_format" msgpack:"output_format"`
	Width         int         `json:"width,omitempty" yaml:"width,omitempty" xml:"width,omitempty" msgpack:"width,omitempty"`
	Height        int         `json:"height,omitempty" yaml:"height,omitempty" xml:"height,omitempty" msgpack:"height,omitempty"`
	SampleRate    uint32      `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty" xml:"sample_rate,omitempty" msgpack:"sample_rate,omitempty"`
	Channels      int         `json:"channels" yaml:"channels" xml:"channels" msgpack:"channels"`
	BitsPerSample int         `json:"bits_per_sample,omitempty" yaml:"bits_per_sample,omitempty" xml:"bits_per_sample,omitempty" msgpack:"bits_per_sample,omitempty"`
	Samples       int         `json:"samples,omitempty" yaml:"samples,omitempty" xml:"samples,omitempty" msgpack:"samples,omitempty"`
	Seconds       float64     `json:"seconds,omitempty" yaml:"seconds,omitempty" xml:"seconds,omitempty" msgpack:"seconds,omitempty"`
	CapacityBits  int         `json:"capacity_bits" yaml:"capacity_bits" xml:"capacity_bits" msgpack:"capacity_bits"`
	Capacity      int         `json:"capacity" yaml:"capacity" xml:"capacity" msgpack:"capacity"`
}

// Inspect decodes carrier bytes of either kind and describes them. Files
// with a RIFF/WAVE header are treated as audio, everything else as an
// image.
func Inspect(ctx context.Context, data []byte) (CarrierInfo, error) {
	var (
		c    Carrier
		info CarrierInfo
	)

	if IsWAV(data) {
		a, err := DecodeAudioCarrier(data)
		if err != nil {
			return CarrierInfo{}, err
		}
		c = a
		info = CarrierInfo{
			OutputFormat:  FormatWAV,
			SampleRate:    a.SampleRate(),
			Channels:      a.Channels(),
			BitsPerSample: a.BitsPerSample(),
			Samples:       a.Samples(),
			Seconds:       a.Duration().Seconds(),
		}
	} else {
		img, err := DecodeImageCarrier(data)
		if err != nil {
			return CarrierInfo{}, err
		}
		c = img
		info = CarrierInfo{
			OutputFormat: OutputFormat(img.Format()),
			Width:        img.Width(),
			Height:       img.Height(),
			Channels:     img.Channels(),
		}
	}

	info.Kind = c.Kind()
	info.Format = c.Format()
	info.CapacityBits = c.CapacityBits()
	info.Capacity = Capacity(c)
	emitCapacityComputed(ctx, info.Kind, info.Format, info.Capacity)
	return info, nil
}
