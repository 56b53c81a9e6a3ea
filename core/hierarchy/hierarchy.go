package hierarchy

// Node wraps a value with its ordered direct children.
type Node[T any] struct {
	Value    T          `json:"value"`
	Children []*Node[T] `json:"children,omitempty"`
}

// Build converts items into a forest.
// idOf returns the key of an item; parentOf returns the key of its parent and false for roots.
// Keys are expected to be unique. The returned slice is never nil.
func Build[T any, K comparable](items []T, idOf func(T) K, parentOf func(T) (K, bool)) []*Node[T] {
	roots := make([]*Node[T], 0)
	groups := make(map[K][]*Node[T])

	for _, item := range items {
		n := &Node[T]{Value: item}
		if pid, ok := parentOf(item); ok {
			groups[pid] = append(groups[pid], n)
			continue
		}
		roots = append(roots, n)
	}

	pending := make([]*Node[T], len(roots))
	copy(pending, roots)

	for len(pending) > 0 {
		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		id := idOf(n.Value)
		children, ok := groups[id]
		if !ok {
			continue
		}
		// A group is attached once, which also breaks cycles and duplicate keys.
		delete(groups, id)

		n.Children = children
		pending = append(pending, children...)
	}

	return roots
}

// Walk visits the forest depth-first in pre-order, passing the depth of each node (roots are 0).
// Traversal stops as soon as fn returns false.
func Walk[T any](forest []*Node[T], fn func(depth int, n *Node[T]) bool) {
	walk(forest, 0, fn)
}

func walk[T any](nodes []*Node[T], depth int, fn func(int, *Node[T]) bool) bool {
	for _, n := range nodes {
		if !fn(depth, n) {
			return false
		}
		if !walk(n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the forest.
func Count[T any](forest []*Node[T]) int {
	total := 0
	Walk(forest, func(int, *Node[T]) bool {
		total++
		return true
	})
	return total
}
