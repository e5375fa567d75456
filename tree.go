package hamtrie

import (
	"cmp"
	"fmt"
	"slices"

	hamerrors "github.com/hashmatch/hamtrie/errors"
)

// Tree is an in-memory index over fixed-width bit-strings, a binary trie
// with one level per hash bit. Insert stores a value under its hash; Search
// returns every stored value whose hash is within a maximum Hamming
// distance of a query, closest first.
//
// The trie is populated lazily: a branch is materialized only when some
// inserted hash traverses it. There is no delete and no rebalance, the
// structure only grows.
//
// A Tree is not safe for concurrent use. At most one goroutine may insert
// or search at any time; callers needing concurrency must serialize access
// externally.
type Tree[V any] struct {
	arena     *arena[V]
	hashCount int

	ensureConsistency bool
	algorithmSet      bool
	algorithm         AlgorithmID
}

// NewTree returns an empty tree. With WithAlgorithmConsistency, the
// algorithm id of the first inserted hash becomes mandatory for every
// later insert and search.
func NewTree[V any](opts ...Option) *Tree[V] {
	cfg := defaultTreeConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Tree[V]{
		arena:             newArena[V](),
		ensureConsistency: cfg.ensureConsistency,
	}
}

// Insert stores value under the given hash. Values inserted under hashes
// with identical bits accumulate in the same leaf and are all returned by
// a matching search.
//
// With consistency checking enabled, the first inserted hash establishes
// the tree's algorithm id and a hash with a different id fails with
// errors.ErrIncompatibleHash, leaving the tree unchanged.
func (t *Tree[V]) Insert(h Hash, value V) error {
	if h.resolution < 1 {
		return fmt.Errorf("%w: %d", hamerrors.ErrInvalidResolution, h.resolution)
	}
	if err := t.checkAlgorithm(h); err != nil {
		return err
	}

	// The raw value carries no leading zero bits; reconstruct them as
	// explicit zero-branch levels so every root-to-leaf path has exactly
	// resolution edges. For the all-zero hash, bit 0 is one of those
	// zeros and is consumed by the terminal step instead.
	omitted := h.resolution - h.BitLen()
	if omitted == h.resolution {
		omitted--
	}

	cur := rootRef
	for range omitted {
		if c, ok := t.arena.child(cur, false); ok {
			cur = c
		} else {
			cur = t.arena.createChild(cur, false)
		}
	}

	for i := h.resolution - 1 - omitted; i > 0; i-- {
		bit := h.Bit(i)
		if c, ok := t.arena.child(cur, bit); ok {
			cur = c
		} else {
			cur = t.arena.createChild(cur, bit)
		}
	}

	// The terminal node may already exist as an interior step of a wider
	// hash's path; values and children coexist on one node, so the value
	// lands there either way.
	bit := h.Bit(0)
	leaf, ok := t.arena.child(cur, bit)
	if !ok {
		leaf = t.arena.createChild(cur, bit)
	}
	t.arena.addValue(leaf, value)

	if t.ensureConsistency && !t.algorithmSet {
		t.algorithmSet = true
		t.algorithm = h.algorithm
	}
	t.hashCount++
	return nil
}

// searchItem is one pending entry of the breadth-first traversal.
type searchItem struct {
	ref      nodeRef
	distance int
	depth    int
}

// Search returns every stored value whose hash differs from h in at most
// maxDistance bit positions, ordered by ascending distance. Order among
// equal distances is unspecified. A maxDistance of 0 returns exact matches
// only; large bounds degrade toward a full traversal, so callers should
// keep maxDistance small relative to the resolution.
//
// Hashes are only comparable at equal declared resolutions: a stored hash
// is found exclusively by queries of the resolution it was inserted with.
// Stored hashes of other resolutions are silently ignored.
//
// With consistency checking enabled and an algorithm id established,
// a query hash with a different id fails with errors.ErrIncompatibleHash.
// Search never establishes or changes the id.
func (t *Tree[V]) Search(h Hash, maxDistance int) ([]Result[V], error) {
	if h.resolution < 1 {
		return nil, fmt.Errorf("%w: %d", hamerrors.ErrInvalidResolution, h.resolution)
	}
	if maxDistance < 0 {
		return nil, fmt.Errorf("%w: %d", hamerrors.ErrNegativeMaxDistance, maxDistance)
	}
	if err := t.checkAlgorithm(h); err != nil {
		return nil, err
	}

	var results []Result[V]

	// Breadth-first over a slice-backed FIFO. A branch whose accumulated
	// distance would exceed maxDistance is never enqueued; that pruning
	// keeps the traversal sublinear in the stored hash count for small
	// bounds.
	queue := make([]searchItem, 1, 64)
	queue[0] = searchItem{ref: rootRef, distance: 0, depth: h.resolution}

	for head := 0; head < len(queue); head++ {
		item := queue[head]

		if item.depth == 0 {
			n := &t.arena.nodes[item.ref]
			// A node at terminal depth holds values only from hashes of
			// this query's resolution; an empty bucket means only wider
			// hashes pass through here, and those never match.
			for _, v := range n.values {
				results = append(results, Result[V]{
					Value:              v,
					Distance:           item.distance,
					NormalizedDistance: float64(item.distance) / float64(h.resolution),
				})
			}
			continue
		}

		bit := h.Bit(item.depth - 1)

		if c, ok := t.arena.child(item.ref, bit); ok {
			queue = append(queue, searchItem{ref: c, distance: item.distance, depth: item.depth - 1})
		}
		if item.distance+1 <= maxDistance {
			if c, ok := t.arena.child(item.ref, !bit); ok {
				queue = append(queue, searchItem{ref: c, distance: item.distance + 1, depth: item.depth - 1})
			}
		}
	}

	// BFS emission order does not guarantee global distance order across
	// subtrees; restore it here.
	slices.SortStableFunc(results, func(a, b Result[V]) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return results, nil
}

// HashCount returns the number of successful Insert calls, regardless of
// how many distinct leaves or values resulted.
func (t *Tree[V]) HashCount() int {
	return t.hashCount
}

// Root returns a handle to the root node for external traversal and
// debugging tools.
func (t *Tree[V]) Root() Node[V] {
	return Node[V]{arena: t.arena, ref: rootRef}
}

func (t *Tree[V]) checkAlgorithm(h Hash) error {
	if !t.ensureConsistency || !t.algorithmSet || t.algorithm == h.algorithm {
		return nil
	}
	return fmt.Errorf("%w: tree has %d, hash has %d",
		hamerrors.ErrIncompatibleHash, t.algorithm, h.algorithm)
}
