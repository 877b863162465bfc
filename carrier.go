package cloak

// Carrier is a decoded cover medium that exposes its embeddable bits as a
// BitChannel.
//
// Carriers are exclusively owned by the call that decoded them. Encode never
// writes into the carrier it is given; it writes into a Clone, so a failed
// call leaves the caller's carrier untouched.
type Carrier interface {
	// Kind reports whether this is an image or audio carrier.
	Kind() CarrierKind

	// Format reports the container format the carrier was decoded from.
	Format() string

	// CapacityBits returns the number of LSB slots the carrier exposes.
	CapacityBits() int

	// Channel returns a fresh BitChannel positioned at slot zero. Writes
	// through the channel mutate the carrier.
	Channel() BitChannel

	// Bytes re-encodes the carrier losslessly.
	Bytes() ([]byte, error)

	// Clone returns a deep copy; writes to the clone do not affect the
	// receiver.
	Clone() Carrier
}
