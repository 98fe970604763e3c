package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it to scrub passwords from memory once they are no longer needed.
// Safe to call with a nil slice.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
