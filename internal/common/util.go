package common

// WipeByteArray zeroes the contents of b in place. Callers use it to clear
// password material as soon as it has been consumed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
