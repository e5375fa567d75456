package hamtrie

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// mustHash builds a Hash from a uint64 value, failing the test on error.
func mustHash(t testing.TB, value uint64, width int, algo AlgorithmID) Hash {
	t.Helper()
	h, err := FromUint64(value, width, algo)
	if err != nil {
		t.Fatalf("FromUint64(%#x, %d): %v", value, width, err)
	}
	return h
}

// randomHash generates a uniformly random hash of the given width.
func randomHash(t testing.TB, rng *rand.Rand, width int, algo AlgorithmID) Hash {
	t.Helper()
	words := make([]uint64, (width+63)/64)
	for i := range words {
		words[i] = rng.Uint64()
	}
	if r := width % 64; r != 0 {
		words[len(words)-1] &= 1<<r - 1
	}
	raw := make([]byte, len(words)*8)
	for i, w := range words {
		binary.BigEndian.PutUint64(raw[(len(words)-1-i)*8:], w)
	}
	h, err := FromBytes(raw, width, algo)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return h
}

// flipBit returns a copy of h with bit i inverted.
func flipBit(t testing.TB, h Hash, i int) Hash {
	t.Helper()
	v := h.BigInt()
	if v.Bit(i) == 0 {
		v.SetBit(v, i, 1)
	} else {
		v.SetBit(v, i, 0)
	}
	out, err := NewHash(v, h.Resolution(), h.Algorithm())
	if err != nil {
		t.Fatalf("NewHash after bit flip: %v", err)
	}
	return out
}

// refEntry is one inserted hash-value pair for the brute-force reference.
type refEntry struct {
	hash  Hash
	value string
}

// refSearch computes the expected result multiset the slow way, comparing
// the query against every inserted hash with Hash.Distance. Entries of a
// different resolution never match.
func refSearch(t testing.TB, entries []refEntry, query Hash, maxDistance int) map[string]int {
	t.Helper()
	want := make(map[string]int)
	for _, e := range entries {
		if e.hash.Resolution() != query.Resolution() {
			continue
		}
		d, err := e.hash.Distance(query)
		if err != nil {
			t.Fatalf("reference distance: %v", err)
		}
		if d <= maxDistance {
			want[e.value] = d
		}
	}
	return want
}

// resultMap flattens search results into value -> distance, failing on
// duplicate values so set comparisons stay exact.
func resultMap(t testing.TB, results []Result[string]) map[string]int {
	t.Helper()
	got := make(map[string]int, len(results))
	for _, r := range results {
		if _, dup := got[r.Value]; dup {
			t.Fatalf("value %q emitted twice", r.Value)
		}
		got[r.Value] = r.Distance
	}
	return got
}
