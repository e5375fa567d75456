// Package hamtrie implements an in-memory index for fixed-width bit-string
// hashes (perceptual hashes) with approximate retrieval by Hamming distance.
//
// The index is a binary trie with one level per hash bit, populated lazily
// so memory stays proportional to the number of distinct bit-prefixes
// actually inserted. Queries run a pruned breadth-first search: any branch
// whose accumulated distance already exceeds the allowed bound is cut off,
// which keeps lookups sublinear in the stored hash count for small bounds.
//
// # Basic Usage
//
// Indexing and querying:
//
//	algo := hamtrie.DeriveAlgorithmID("dhash", 64)
//
//	tree := hamtrie.NewTree[string](hamtrie.WithAlgorithmConsistency())
//	h, err := hamtrie.FromUint64(0xb64d39ab2c01f7e4, 64, algo)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tree.Insert(h, "cat.jpg"); err != nil {
//	    log.Fatal(err)
//	}
//
//	matches, err := tree.Search(h, 6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range matches {
//	    fmt.Printf("%s at distance %d (%.3f)\n", m.Value, m.Distance, m.NormalizedDistance)
//	}
//
// Computing hashes from media is out of scope; any perceptual hashing
// library works as long as its output is brought into a Hash via NewHash,
// FromUint64 or FromBytes with the producing algorithm's id attached.
//
// A Tree is not safe for concurrent use; callers must serialize access.
// Hashes of different declared resolutions may share one tree but never
// match each other.
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Public API: tree.go (NewTree, Insert, Search), hash.go (NewHash,
//     FromUint64, FromBytes, Distance), algorithm.go (DeriveAlgorithmID)
//   - Configuration: tree_options.go (Option, WithAlgorithmConsistency)
//   - Trie storage: node.go (node arena, Node handle)
//   - Diagnostics: dump.go (Dump, DumpString)
//   - Bit primitives: internal/bits
//   - Error sentinels: errors/
package hamtrie
