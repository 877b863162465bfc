package cloak

// Capacity returns the largest message, in bytes, that c can hold once the
// frame overhead is paid. It never returns a negative value and depends only
// on the carrier's dimensions.
func Capacity(c Carrier) int {
	return capacityFromBits(c.CapacityBits())
}

func capacityFromBits(bits int) int {
	n := bits/8 - FrameOverhead
	if n < 0 {
		return 0
	}
	return n
}
