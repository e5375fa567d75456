package hamtrie

import (
	"fmt"
	"math/big"
	mathbits "math/bits"
	"strings"

	hamerrors "github.com/hashmatch/hamtrie/errors"
	"github.com/hashmatch/hamtrie/internal/bits"
)

// Hash is an immutable fixed-width bit-string: an unsigned value together
// with the bit resolution it is defined over and the id of the algorithm
// that produced it. The value may have fewer significant bits than the
// resolution; the missing high bits are implicit leading zeros.
//
// The zero value is not a usable Hash (its resolution is 0); construct
// hashes with NewHash, FromUint64 or FromBytes.
type Hash struct {
	words      []uint64 // little-endian words, no trailing zero words
	resolution int
	algorithm  AlgorithmID
}

// NewHash constructs a Hash from an arbitrary-precision value. The value
// must be non-negative and fit into bitResolution bits.
func NewHash(value *big.Int, bitResolution int, algorithm AlgorithmID) (Hash, error) {
	if bitResolution < 1 {
		return Hash{}, fmt.Errorf("%w: %d", hamerrors.ErrInvalidResolution, bitResolution)
	}
	if value.Sign() < 0 {
		return Hash{}, hamerrors.ErrNegativeValue
	}
	if value.BitLen() > bitResolution {
		return Hash{}, fmt.Errorf("%w: %d significant bits, resolution %d",
			hamerrors.ErrHashOverflow, value.BitLen(), bitResolution)
	}
	return Hash{words: wordsFromBig(value), resolution: bitResolution, algorithm: algorithm}, nil
}

// FromUint64 constructs a Hash of up to 64 bits resolution from a plain
// integer value.
func FromUint64(value uint64, bitResolution int, algorithm AlgorithmID) (Hash, error) {
	if bitResolution < 1 {
		return Hash{}, fmt.Errorf("%w: %d", hamerrors.ErrInvalidResolution, bitResolution)
	}
	if n := mathbits.Len64(value); n > bitResolution {
		return Hash{}, fmt.Errorf("%w: %d significant bits, resolution %d",
			hamerrors.ErrHashOverflow, n, bitResolution)
	}
	var words []uint64
	if value != 0 {
		words = []uint64{value}
	}
	return Hash{words: words, resolution: bitResolution, algorithm: algorithm}, nil
}

// FromBytes constructs a Hash from a big-endian byte representation of the
// value, e.g. the raw bytes a hashing library emits. The significant bits
// of raw must fit into bitResolution.
func FromBytes(raw []byte, bitResolution int, algorithm AlgorithmID) (Hash, error) {
	if bitResolution < 1 {
		return Hash{}, fmt.Errorf("%w: %d", hamerrors.ErrInvalidResolution, bitResolution)
	}
	words := make([]uint64, bits.WordsForBits(len(raw)*8))
	for i := 0; i < len(raw); i++ {
		b := raw[len(raw)-1-i]
		words[i/8] |= uint64(b) << ((i % 8) * 8)
	}
	words = bits.Trim(words)
	if n := bits.SigBits(words); n > bitResolution {
		return Hash{}, fmt.Errorf("%w: %d significant bits, resolution %d",
			hamerrors.ErrHashOverflow, n, bitResolution)
	}
	return Hash{words: words, resolution: bitResolution, algorithm: algorithm}, nil
}

// Bit reports whether bit i (0 = least significant) of the value is set.
// Positions above the significant bits read as zero.
func (h Hash) Bit(i int) bool {
	return bits.Bit(h.words, i)
}

// BitLen returns the significant bit length of the value: the position of
// the highest set bit plus one, 0 for the all-zero hash.
func (h Hash) BitLen() int {
	return bits.SigBits(h.words)
}

// Resolution returns the declared bit width the hash is defined over.
func (h Hash) Resolution() int {
	return h.resolution
}

// Algorithm returns the id of the algorithm that produced the hash.
func (h Hash) Algorithm() AlgorithmID {
	return h.algorithm
}

// BigInt returns the hash value as a freshly allocated big.Int.
func (h Hash) BigInt() *big.Int {
	v := new(big.Int)
	for i := len(h.words) - 1; i >= 0; i-- {
		v.Lsh(v, bits.WordBits)
		v.Or(v, new(big.Int).SetUint64(h.words[i]))
	}
	return v
}

// Distance returns the exact Hamming distance to other over the full
// declared width. Both hashes must share the same resolution and algorithm
// id; the implicit leading zeros of both operands count as equal bits.
func (h Hash) Distance(other Hash) (int, error) {
	if h.resolution != other.resolution {
		return 0, fmt.Errorf("%w: %d and %d",
			hamerrors.ErrResolutionMismatch, h.resolution, other.resolution)
	}
	if h.algorithm != other.algorithm {
		return 0, fmt.Errorf("%w: %d and %d",
			hamerrors.ErrIncompatibleHash, h.algorithm, other.algorithm)
	}
	return bits.Distance(h.words, other.words), nil
}

// NormalizedDistance returns Distance divided by the bit resolution, a
// value in [0, 1] comparable across hash widths.
func (h Hash) NormalizedDistance(other Hash) (float64, error) {
	d, err := h.Distance(other)
	if err != nil {
		return 0, err
	}
	return float64(d) / float64(h.resolution), nil
}

// String returns the value as a binary string zero-padded to the full
// resolution, most significant bit first.
func (h Hash) String() string {
	var sb strings.Builder
	sb.Grow(h.resolution)
	for i := h.resolution - 1; i >= 0; i-- {
		if h.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// wordsFromBig converts a non-negative big.Int into little-endian uint64
// words. big.Word is 32 bits on some platforms, so words are repacked
// rather than reinterpreted.
func wordsFromBig(v *big.Int) []uint64 {
	bw := v.Bits()
	if mathbits.UintSize == 64 {
		words := make([]uint64, len(bw))
		for i, w := range bw {
			words[i] = uint64(w)
		}
		return bits.Trim(words)
	}
	words := make([]uint64, (len(bw)+1)/2)
	for i, w := range bw {
		words[i/2] |= uint64(w) << ((i % 2) * 32)
	}
	return bits.Trim(words)
}
