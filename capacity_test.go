package cloak

import "testing"

func TestCapacityFromBits(t *testing.T) {
	tests := []struct {
		name string
		bits int
		want int
	}{
		{"100x100 image", 100 * 100 * 3, 3702},
		{"one second mono 44.1kHz", 44100, 5464},
		{"exactly overhead", FrameOverhead * 8, 0},
		{"overhead plus one byte", (FrameOverhead + 1) * 8, 1},
		{"partial byte ignored", (FrameOverhead+1)*8 + 7, 1},
		{"10x10 image", 10 * 10 * 3, 0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capacityFromBits(tt.bits); got != tt.want {
				t.Errorf("capacityFromBits(%d) = %d, want %d", tt.bits, got, tt.want)
			}
		})
	}
}
