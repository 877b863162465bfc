package cloak

import (
	"errors"
	"strings"
	"testing"
)

func TestCarrierError_Is(t *testing.T) {
	err := newCarrierError(KindImage, "", errors.New("image: unknown format"))

	if !errors.Is(err, ErrUnsupportedCarrier) {
		t.Error("CarrierError should unwrap to ErrUnsupportedCarrier")
	}

	if errors.Is(err, ErrRecoveryFailed) {
		t.Error("CarrierError should not match ErrRecoveryFailed")
	}
}

func TestCarrierError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newCarrierError(KindAudio, FormatWAV, errBitDepth),
			want: "audio: unsupported carrier format (wav): only 16-bit PCM is supported",
		},
		{
			name: "kind only",
			err:  &CarrierError{Err: ErrUnsupportedCarrier, Kind: KindImage},
			want: "image: unsupported carrier format",
		},
		{
			name: "sentinel only",
			err:  &CarrierError{Err: ErrUnsupportedCarrier},
			want: "unsupported carrier format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCapacityError_Message(t *testing.T) {
	err := newCapacityError(3702, 3703)

	want := "message exceeds carrier capacity: 3703 bytes requested, 3702 available"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatal("errors.As should extract *CapacityError")
	}
	if capErr.Capacity != 3702 || capErr.Requested != 3703 {
		t.Errorf("CapacityError = %+v", capErr)
	}
}

func TestInputError_Message(t *testing.T) {
	err := newInputError("passphrase", "is empty")

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("InputError should unwrap to ErrInvalidInput")
	}

	want := "invalid input: passphrase is empty"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &InputError{Err: ErrInvalidInput, Field: "message"}
	if got := bare.Error(); got != "invalid input: message" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRecoveryError_HidesCause(t *testing.T) {
	corrupt := newRecoveryError(errCorruptFrame)
	auth := newRecoveryError(errAuthentication)

	if corrupt.Error() != auth.Error() {
		t.Errorf("recovery errors should be indistinguishable: %q vs %q", corrupt.Error(), auth.Error())
	}

	for _, err := range []error{corrupt, auth} {
		if !errors.Is(err, ErrRecoveryFailed) {
			t.Error("RecoveryError should unwrap to ErrRecoveryFailed")
		}
		if errors.Is(err, errCorruptFrame) || errors.Is(err, errAuthentication) {
			t.Error("RecoveryError must not expose its cause through errors.Is")
		}
		if strings.Contains(err.Error(), "authentication") || strings.Contains(err.Error(), "corrupt") {
			t.Errorf("RecoveryError message leaks cause: %q", err.Error())
		}
	}
}

func TestErrorsAs_RecoveryError(t *testing.T) {
	err := newRecoveryError(errAuthentication)

	var recErr *RecoveryError
	if !errors.As(err, &recErr) {
		t.Fatal("errors.As should extract *RecoveryError")
	}
	if recErr.cause != errAuthentication {
		t.Errorf("cause = %v, want %v", recErr.cause, errAuthentication)
	}
}
