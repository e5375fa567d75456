package hamtrie

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// AlgorithmID identifies the hashing algorithm (and its settings) that
// produced a Hash. Distances between hashes of different algorithms are
// meaningless; a Tree built with WithAlgorithmConsistency rejects any id
// that differs from the first one it saw.
//
// Any stable scheme works as long as distinct algorithm configurations map
// to distinct ids. DeriveAlgorithmID provides one.
type AlgorithmID uint64

// DeriveAlgorithmID computes a stable id from an algorithm's name and bit
// resolution. Configurations differing in either component map to different
// ids, so a 64-bit and a 256-bit variant of the same algorithm never mix.
func DeriveAlgorithmID(name string, bitResolution int) AlgorithmID {
	var d xxhash.Digest
	d.Reset()
	_, _ = d.WriteString(name)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(bitResolution))
	_, _ = d.Write(buf[:])
	return AlgorithmID(d.Sum64())
}
