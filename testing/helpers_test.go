package testing

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"
)

func TestMessage(t *testing.T) {
	if got := len(Message(3700)); got != 3700 {
		t.Errorf("len(Message(3700)) = %d, want 3700", got)
	}
	if Message(0) != "" {
		t.Error("Message(0) should be empty")
	}
}

func TestPNG_Decodes(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(PNG(t, 10, 4)))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 10x4", b)
	}
}

func TestTranslucentNRGBA_HasTransparentPixels(t *testing.T) {
	img := TranslucentNRGBA(4, 4)
	if img.Pix[3] != 0 {
		t.Errorf("first alpha = %d, want 0", img.Pix[3])
	}
	if img.Opaque() {
		t.Error("image should not be opaque")
	}
}

func TestWAV_Layout(t *testing.T) {
	wav := WAV(t, 100, 2)

	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE header")
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); int(got) != len(wav)-8 {
		t.Errorf("RIFF size = %d, want %d", got, len(wav)-8)
	}
	// header(12) + fmt chunk(8+16) + data header(8) + 100 samples * 2 bytes
	if len(wav) != 12+24+8+200 {
		t.Errorf("len = %d, want %d", len(wav), 12+24+8+200)
	}
}

func TestBuildWAV_Extensible(t *testing.T) {
	spec := PCM16(10, 1)
	spec.FormatTag = 0xFFFE
	spec.SubFormat = 1
	wav := BuildWAV(t, spec)

	if got := binary.LittleEndian.Uint32(wav[16:20]); got != 40 {
		t.Errorf("fmt chunk size = %d, want 40", got)
	}
}
