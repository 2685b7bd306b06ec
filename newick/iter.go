package newick

import "iter"

// Children returns the direct descendants of `n` in order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

// PreOrder returns every node of the subtree rooted at `n`, parents before
// their children, children left to right.
func (n *Node) PreOrder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		stack := []*Node{n}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(top) {
				return
			}
			for i := len(top.children) - 1; i >= 0; i-- {
				stack = append(stack, top.children[i])
			}
		}
	}
}

// PostOrder returns every node of the subtree rooted at `n`, children left to
// right before their parent.
func (n *Node) PostOrder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		type frame struct {
			n    *Node
			next int
		}
		stack := []frame{{n: n}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.n.children) {
				c := top.n.children[top.next]
				top.next++
				stack = append(stack, frame{n: c})
				continue
			}
			done := top.n
			stack = stack[:len(stack)-1]
			if !yield(done) {
				return
			}
		}
	}
}

// Leaves returns the leaves of the subtree rooted at `n`, left to right.
func (n *Node) Leaves() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for m := range n.PreOrder() {
			if m.IsLeaf() && !yield(m) {
				return
			}
		}
	}
}

// PreOrder is shorthand for t.Root().PreOrder().
func (t *Tree) PreOrder() iter.Seq[*Node] {
	return t.root.PreOrder()
}

// PostOrder is shorthand for t.Root().PostOrder().
func (t *Tree) PostOrder() iter.Seq[*Node] {
	return t.root.PostOrder()
}

// Leaves is shorthand for t.Root().Leaves().
func (t *Tree) Leaves() iter.Seq[*Node] {
	return t.root.Leaves()
}

// NumLeaves returns the number of leaves in the tree.
func (t *Tree) NumLeaves() int {
	count := 0
	for range t.Leaves() {
		count++
	}
	return count
}

// Find returns the first leaf, in pre-order, whose taxon is `taxon`.
func (t *Tree) Find(taxon string) (*Node, bool) {
	for leaf := range t.Leaves() {
		if name, ok := leaf.Taxon(); ok && name == taxon {
			return leaf, true
		}
	}
	return nil, false
}

// PathLength returns the sum of the branch lengths on the path from the root
// down to `target`. The root's own branch length is not part of any path, and
// missing lengths count as zero. It returns false if `target` is not in the
// tree.
func (t *Tree) PathLength(target *Node) (float64, bool) {
	var found float64
	ok := false
	t.walkDistances(func(n *Node, dist float64) bool {
		if n == target {
			found, ok = dist, true
			return false
		}
		return true
	})
	return found, ok
}

// Height returns the largest root-to-leaf path length.
func (t *Tree) Height() float64 {
	height := 0.0
	t.walkDistances(func(n *Node, dist float64) bool {
		if n.IsLeaf() && dist > height {
			height = dist
		}
		return true
	})
	return height
}

// walkDistances visits nodes in pre-order with their distance from the root
// until `visit` returns false.
func (t *Tree) walkDistances(visit func(n *Node, dist float64) bool) {
	type frame struct {
		n    *Node
		dist float64
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(f.n, f.dist) {
			return
		}
		for i := len(f.n.children) - 1; i >= 0; i-- {
			c := f.n.children[i]
			l, _ := c.Length()
			stack = append(stack, frame{c, f.dist + l})
		}
	}
}
