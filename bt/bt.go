// Package bt is a minimal behavior tree engine. Trees are re-evaluated in
// full from the root every tick; composites keep no state between ticks, so
// all temporal state lives inside leaves.
package bt

// Status is the tri-state result of ticking a node.
type Status uint8

const (
	Failure Status = iota
	Success
	Running
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case Failure:
		return "failure"
	case Success:
		return "success"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Leaf is a domain node ticked with the shared per-tick context. Leaves own
// whatever timers or indices they need across ticks.
type Leaf[C any] interface {
	Tick(ctx *C) Status
}

type nodeKind uint8

const (
	kindLeaf nodeKind = iota
	kindSequence
	kindSelector
	kindParallel
)

// Node is one node of a tree: either a leaf or one of the fixed composite
// kinds. The composite set is closed; dispatch is a switch, not dynamic.
type Node[C any] struct {
	kind     nodeKind
	leaf     Leaf[C]
	children []*Node[C]
}

// NewLeaf wraps a leaf into a node.
func NewLeaf[C any](l Leaf[C]) *Node[C] {
	return &Node[C]{kind: kindLeaf, leaf: l}
}

// Sequence succeeds when all children succeed, short-circuiting on the first
// child that fails or is still running.
func Sequence[C any](children ...*Node[C]) *Node[C] {
	return &Node[C]{kind: kindSequence, children: children}
}

// Selector succeeds on the first child that succeeds, short-circuiting on the
// first child that succeeds or is still running.
func Selector[C any](children ...*Node[C]) *Node[C] {
	return &Node[C]{kind: kindSelector, children: children}
}

// Parallel ticks every child every tick. It fails if any child failed,
// succeeds if all succeeded, and is running otherwise.
func Parallel[C any](children ...*Node[C]) *Node[C] {
	return &Node[C]{kind: kindParallel, children: children}
}

// Tick evaluates the node for this tick.
func (n *Node[C]) Tick(ctx *C) Status {
	if n == nil {
		return Success
	}
	switch n.kind {
	case kindLeaf:
		if n.leaf == nil {
			return Success
		}
		return n.leaf.Tick(ctx)
	case kindSequence:
		for _, c := range n.children {
			switch c.Tick(ctx) {
			case Failure:
				return Failure
			case Running:
				return Running
			}
		}
		return Success
	case kindSelector:
		for _, c := range n.children {
			switch c.Tick(ctx) {
			case Success:
				return Success
			case Running:
				return Running
			}
		}
		return Failure
	case kindParallel:
		failed := false
		running := false
		for _, c := range n.children {
			switch c.Tick(ctx) {
			case Failure:
				failed = true
			case Running:
				running = true
			}
		}
		if failed {
			return Failure
		}
		if running {
			return Running
		}
		return Success
	default:
		return Failure
	}
}

// Tree is a behavior tree instance. The topology is fixed at construction.
type Tree[C any] struct {
	root *Node[C]
}

// NewTree creates a tree with the given root.
func NewTree[C any](root *Node[C]) *Tree[C] {
	return &Tree[C]{root: root}
}

// Tick evaluates the whole tree from the root.
func (t *Tree[C]) Tick(ctx *C) Status {
	if t == nil || t.root == nil {
		return Success
	}
	return t.root.Tick(ctx)
}
