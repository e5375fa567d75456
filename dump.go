package hamtrie

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the reconstructed bit path and values of every node where at
// least one hash terminates, one line per such node. Diagnostic only; the
// format is not stable. The 1-branch of each node is visited before its
// 0-branch. With mixed resolutions in one tree a terminal node can also
// carry children, so the walk always continues below a printed node.
func (t *Tree[V]) Dump(w io.Writer) {
	type frame struct {
		ref  nodeRef
		path string
	}

	// Explicit stack instead of recursion; paths can be as deep as the
	// widest inserted hash.
	stack := []frame{{ref: rootRef, path: ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.arena.nodes[f.ref]
		if len(n.values) > 0 {
			fmt.Fprintf(w, "leaf %s %v\n", f.path, n.values)
		}

		// LIFO, so push the 0-branch first.
		if c := n.children[0]; c != nilRef {
			stack = append(stack, frame{ref: c, path: f.path + "0"})
		}
		if c := n.children[1]; c != nilRef {
			stack = append(stack, frame{ref: c, path: f.path + "1"})
		}
	}
}

// DumpString returns Dump's output as a string.
func (t *Tree[V]) DumpString() string {
	var sb strings.Builder
	t.Dump(&sb)
	return sb.String()
}
