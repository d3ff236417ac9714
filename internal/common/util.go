package common

// WipeByteArray zeroes b in place. Passwords read from the terminal are
// wiped once they have been handed on.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
