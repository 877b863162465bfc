package benchmarks

import (
	"bytes"
	"context"
	"testing"

	"github.com/zoobzio/cloak"
	cloaktest "github.com/zoobzio/cloak/testing"
)

func BenchmarkImageCapacity(b *testing.B) {
	png := cloaktest.PNG(b, 256, 256)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cloak.ImageCapacity(ctx, png)
	}
}

func BenchmarkEncodeImage(b *testing.B) {
	png := cloaktest.PNG(b, 256, 256)
	msg := cloaktest.Message(1024)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cloak.EncodeImage(ctx, png, msg, cloaktest.Passphrase)
	}
}

func BenchmarkDecodeImage(b *testing.B) {
	ctx := context.Background()
	out, err := cloak.EncodeImage(ctx, cloaktest.PNG(b, 256, 256), cloaktest.Message(1024), cloaktest.Passphrase)
	if err != nil {
		b.Fatalf("EncodeImage() error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cloak.DecodeImage(ctx, out, cloaktest.Passphrase)
	}
}

func BenchmarkEncodeAudio(b *testing.B) {
	wav := cloaktest.WAV(b, 441000, 2)
	msg := cloaktest.Message(1024)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cloak.EncodeAudio(ctx, wav, msg, cloaktest.Passphrase)
	}
}

func BenchmarkDeriveKey(b *testing.B) {
	salt := bytes.Repeat([]byte{0x11}, cloak.SaltSize)
	pass := []byte(cloaktest.Passphrase)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cloak.DeriveKey(pass, salt)
	}
}
