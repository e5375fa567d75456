package hamtrie

// nodeRef addresses a node inside a tree's arena. The root is always ref 0;
// nilRef marks an unmaterialized child slot.
type nodeRef = int32

const (
	nilRef  nodeRef = -1
	rootRef nodeRef = 0
)

// node is one trie node: two optional children plus a bucket of values for
// the hashes that terminate here. A hash of resolution w terminates at
// depth w, so in a tree holding mixed resolutions one node can serve both
// as an interior step for wider hashes and as the terminal for narrower
// ones. The two roles never interact: a search emits values only at its
// own query's terminal depth.
type node[V any] struct {
	children [2]nodeRef // indexed by branch bit
	values   []V        // hashes terminating at this node, insertion order
}

// arena owns every node of one tree. Nodes are created lazily during
// insertion and never deleted or relocated, so a nodeRef stays valid for
// the lifetime of the tree. Memory is proportional to the number of
// distinct bit-prefixes inserted, not to 2^depth.
type arena[V any] struct {
	nodes []node[V]
}

func newArena[V any]() *arena[V] {
	a := &arena[V]{nodes: make([]node[V], 1, 64)}
	a.nodes[rootRef] = node[V]{children: [2]nodeRef{nilRef, nilRef}}
	return a
}

func childSlot(bit bool) int {
	if bit {
		return 1
	}
	return 0
}

// child returns the existing child of ref along the given branch bit, or
// ok == false if that branch was never materialized. No side effects, so
// insertion and search share it: insertion creates on absence, search
// treats absence as a dead end.
func (a *arena[V]) child(ref nodeRef, bit bool) (nodeRef, bool) {
	c := a.nodes[ref].children[childSlot(bit)]
	return c, c != nilRef
}

// createChild materializes a new empty node along the given branch.
// Callers must have checked absence via child first.
func (a *arena[V]) createChild(ref nodeRef, bit bool) nodeRef {
	slot := childSlot(bit)
	if a.nodes[ref].children[slot] != nilRef {
		panic("hamtrie: createChild on an occupied branch")
	}
	a.nodes = append(a.nodes, node[V]{children: [2]nodeRef{nilRef, nilRef}})
	c := nodeRef(len(a.nodes) - 1)
	a.nodes[ref].children[slot] = c
	return c
}

// addValue records v at the node where a hash terminated.
func (a *arena[V]) addValue(ref nodeRef, v V) {
	a.nodes[ref].values = append(a.nodes[ref].values, v)
}

// len returns the number of materialized nodes, root included.
func (a *arena[V]) len() int {
	return len(a.nodes)
}

// Node is an opaque handle to a trie node, exposed for external traversal
// and debugging tools. Handles are obtained from Tree.Root and stay valid
// for the lifetime of the tree.
type Node[V any] struct {
	arena *arena[V]
	ref   nodeRef
}

// HasValues reports whether at least one inserted hash terminates at this
// node. In a tree holding mixed resolutions such a node may still have
// children, carrying wider hashes through it.
func (n Node[V]) HasValues() bool {
	return len(n.arena.nodes[n.ref].values) > 0
}

// Child returns the child reached along the given branch bit, or
// ok == false if that branch does not exist.
func (n Node[V]) Child(bit bool) (Node[V], bool) {
	c, ok := n.arena.child(n.ref, bit)
	if !ok {
		return Node[V]{}, false
	}
	return Node[V]{arena: n.arena, ref: c}, true
}

// Values returns a snapshot of the values terminating at this node, in
// insertion order. Nodes where no hash terminates return nil.
func (n Node[V]) Values() []V {
	vals := n.arena.nodes[n.ref].values
	if len(vals) == 0 {
		return nil
	}
	out := make([]V, len(vals))
	copy(out, vals)
	return out
}
