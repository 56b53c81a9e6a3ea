// Package hierarchy turns flat, parent-referencing sequences into ordered forests.
//
// Build wraps every item in a Node, groups nodes by parent key and attaches each group to the node
// whose key it references. The order of siblings always matches their relative order in the input,
// so callers sort the flat sequence once (for example by a display sequence number) and the tree
// inherits that ordering at every level.
//
// Items whose parent key matches no reachable node are dropped from the result instead of being
// promoted to roots:
//
//	type row struct {
//		ID     int
//		Parent int // 0 means no parent
//	}
//
//	forest := hierarchy.Build(rows,
//		func(r row) int { return r.ID },
//		func(r row) (int, bool) { return r.Parent, r.Parent != 0 },
//	)
//
//	hierarchy.Walk(forest, func(depth int, n *hierarchy.Node[row]) bool {
//		fmt.Printf("%s%d\n", strings.Repeat("  ", depth), n.Value.ID)
//		return true
//	})
package hierarchy
