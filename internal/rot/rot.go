// Package rot provides modular rotation of ASCII letters and integer indices.
package rot

// AlphabetLen is the number of letters in the ASCII alphabet.
const AlphabetLen = 26

// Mod returns a modulo m with the sign of m, so Mod(-1, 26) is 25.
func Mod(a, m int) int {
	if m <= 0 {
		panic("rot: modulus must be positive")
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Neg returns the residue of -n modulo m. It is exact for every n,
// including math.MinInt.
func Neg(n, m int) int {
	return Mod(-Mod(n, m), m)
}

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Letter rotates r by n positions within its own case. n may be negative or
// larger than the alphabet.
func Letter(r rune, n int) rune {
	var base rune
	switch {
	case 'a' <= r && r <= 'z':
		base = 'a'
	case 'A' <= r && r <= 'Z':
		base = 'A'
	default:
		panic("rot: input must be an ASCII letter")
	}
	return base + rune(Mod(int(r-base)+Mod(n, AlphabetLen), AlphabetLen))
}
