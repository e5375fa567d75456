// Package bits provides low-level primitives for bit-string values stored
// as little-endian slices of uint64 words.
package bits

import "math/bits"

// WordBits is the number of bits per storage word.
const WordBits = 64

// WordsForBits returns the number of words needed to hold n bits.
func WordsForBits(n int) int {
	return (n + WordBits - 1) / WordBits
}

// SigBits returns the significant bit length of words: the position of the
// highest set bit plus one, or 0 if every word is zero. Trailing zero words
// are permitted.
func SigBits(words []uint64) int {
	for i := len(words) - 1; i >= 0; i-- {
		if words[i] != 0 {
			return i*WordBits + bits.Len64(words[i])
		}
	}
	return 0
}

// Bit reports whether bit i (0 = least significant) is set. Positions at or
// beyond the stored words are implicit zeros.
func Bit(words []uint64, i int) bool {
	w := i / WordBits
	if w >= len(words) {
		return false
	}
	return words[w]>>(i%WordBits)&1 == 1
}

// Distance returns the Hamming distance between a and b. The shorter operand
// is zero-extended, so operands normalized to different word counts still
// compare over their common numeric value.
func Distance(a, b []uint64) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	var d int
	for i, w := range a {
		if i < len(b) {
			w ^= b[i]
		}
		d += bits.OnesCount64(w)
	}
	return d
}

// Trim drops trailing zero words so equal values have equal representations.
// The result aliases words.
func Trim(words []uint64) []uint64 {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	return words[:n]
}
