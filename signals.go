package cloak

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events. Payloads never carry passphrases, keys or
// message contents.
var (
	SignalCapacityComputed = capitan.NewSignal("cloak.capacity.computed", "Carrier capacity computed")
	SignalEncodeStart      = capitan.NewSignal("cloak.encode.start", "Encode operation beginning")
	SignalEncodeComplete   = capitan.NewSignal("cloak.encode.complete", "Encode operation finished")
	SignalDecodeStart      = capitan.NewSignal("cloak.decode.start", "Decode operation beginning")
	SignalDecodeComplete   = capitan.NewSignal("cloak.decode.complete", "Decode operation finished")
)

// Keys for typed event data.
var (
	KeyKind        = capitan.NewStringKey("kind")
	KeyFormat      = capitan.NewStringKey("format")
	KeyState       = capitan.NewStringKey("state")
	KeyCapacity    = capitan.NewIntKey("capacity")
	KeyMessageSize = capitan.NewIntKey("message_size")
	KeyFrameSize   = capitan.NewIntKey("frame_size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitCapacityComputed emits an event when a capacity query finishes.
func emitCapacityComputed(ctx context.Context, kind CarrierKind, format string, capacity int) {
	capitan.Emit(ctx, SignalCapacityComputed,
		KeyKind.Field(string(kind)),
		KeyFormat.Field(format),
		KeyCapacity.Field(capacity),
	)
}

// emitEncodeStart emits an event when encode begins.
func emitEncodeStart(ctx context.Context, kind CarrierKind, format string) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyKind.Field(string(kind)),
		KeyFormat.Field(format),
	)
}

// emitEncodeComplete emits an event when encode finishes. state is the last
// state the call reached.
func emitEncodeComplete(ctx context.Context, kind CarrierKind, format string, state encodeState, messageSize, frameSize int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyKind.Field(string(kind)),
		KeyFormat.Field(format),
		KeyState.Field(state.String()),
		KeyMessageSize.Field(messageSize),
		KeyFrameSize.Field(frameSize),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when decode begins.
func emitDecodeStart(ctx context.Context, kind CarrierKind, format string) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyKind.Field(string(kind)),
		KeyFormat.Field(format),
	)
}

// emitDecodeComplete emits an event when decode finishes. err is always the
// opaque recovery error, never its cause.
func emitDecodeComplete(ctx context.Context, kind CarrierKind, format string, state decodeState, messageSize int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyKind.Field(string(kind)),
		KeyFormat.Field(format),
		KeyState.Field(state.String()),
		KeyMessageSize.Field(messageSize),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}
