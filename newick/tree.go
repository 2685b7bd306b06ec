package newick

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rooting records whether a tree was declared rooted, unrooted or neither.
// An undeclared tree is reported as RootingUnknown rather than guessed.
type Rooting int

const (
	RootingUnknown Rooting = iota
	Rooted
	Unrooted
)

func (r Rooting) String() string {
	switch r {
	case Rooted:
		return "rooted"
	case Unrooted:
		return "unrooted"
	}
	return "unknown"
}

// RootingOf returns the rooting declared by a `&R` or `&U` command comment
// in `comments`. The last such comment wins.
func RootingOf(comments []string) Rooting {
	rooting := RootingUnknown
	for _, c := range comments {
		switch strings.ToUpper(strings.TrimSpace(c)) {
		case "&R":
			rooting = Rooted
		case "&U":
			rooting = Unrooted
		}
	}
	return rooting
}

// RootingPolicy decides the rooting of each tree as it is read. A policy
// either defaults the rooting of trees that declare none or overrides what
// every tree declares.
type RootingPolicy int

const (
	// RootingAsDeclared keeps the declared rooting. Undeclared trees are
	// RootingUnknown.
	RootingAsDeclared RootingPolicy = iota
	DefaultRooted
	DefaultUnrooted
	ForceRooted
	ForceUnrooted
)

// Apply returns the rooting of a tree that declared `declared`.
func (p RootingPolicy) Apply(declared Rooting) Rooting {
	switch p {
	case ForceRooted:
		return Rooted
	case ForceUnrooted:
		return Unrooted
	case DefaultRooted:
		if declared == RootingUnknown {
			return Rooted
		}
	case DefaultUnrooted:
		if declared == RootingUnknown {
			return Unrooted
		}
	}
	return declared
}

// WeightOf returns the tree weight given by a `&W` command comment in
// `comments`, written either as a number or as a fraction `a/b`. The last
// such comment wins. A `&W` comment that holds no valid weight is an error.
func WeightOf(comments []string) (float64, bool, error) {
	var weight float64
	found := false
	for _, c := range comments {
		c = strings.TrimSpace(c)
		if len(c) < 2 || !strings.EqualFold(c[:2], "&W") {
			continue
		}
		if len(c) > 2 && !isBlank(rune(c[2])) && !isNL(rune(c[2])) {
			continue
		}
		w, err := parseWeight(strings.TrimSpace(c[2:]))
		if err != nil {
			return 0, false, err
		}
		weight, found = w, true
	}
	return weight, found, nil
}

func parseWeight(s string) (float64, error) {
	num, den, frac := strings.Cut(s, "/")
	if !isNumber(num) || (frac && !isNumber(den)) {
		return 0, fmt.Errorf("Invalid tree weight '%s'.", s)
	}
	w, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid tree weight '%s'.", s)
	}
	if frac {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("Invalid tree weight '%s'.", s)
		}
		w /= d
	}
	return w, nil
}

// Node is a single node of a tree. A node without children is a leaf.
// Nodes are never modified after construction.
type Node struct {
	children []*Node

	// The label of this node. For leaves this is the resolved taxon name.
	// If it's empty, then this node does not have a name.
	label string

	// The branch length of this node corresponding to the distance between
	// it and its parent node. If it's `nil`, then no distance exists.
	length *float64
}

// NewLeaf returns a leaf labeled `label`. A nil `length` means the leaf has no
// branch length.
func NewLeaf(label string, length *float64) *Node {
	return &Node{label: label, length: copyLength(length)}
}

// NewInternal returns an internal node with the given children, kept in the
// order given. It panics if no children are given.
func NewInternal(label string, length *float64, children ...*Node) *Node {
	if len(children) == 0 {
		panic("newick: an internal node needs at least one child")
	}
	return &Node{
		children: append([]*Node(nil), children...),
		label:    label,
		length:   copyLength(length),
	}
}

func copyLength(length *float64) *float64 {
	if length == nil {
		return nil
	}
	l := *length
	return &l
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Label returns the node label, which may be empty.
func (n *Node) Label() string {
	return n.label
}

// Taxon returns the taxon name of a leaf. It returns false for internal nodes
// and unlabeled leaves.
func (n *Node) Taxon() (string, bool) {
	if !n.IsLeaf() || len(n.label) == 0 {
		return "", false
	}
	return n.label, true
}

// Length returns the branch length to the parent, if one was given.
func (n *Node) Length() (float64, bool) {
	if n.length == nil {
		return 0, false
	}
	return *n.length, true
}

// NumChildren returns the number of direct descendants.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the i'th child in textual left-to-right order.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Tree is a named tree with a single root. A tree exclusively owns every node
// reachable from its root.
type Tree struct {
	name    string
	rooting Rooting
	root    *Node

	// The weight given by a `[&W ...]` comment. If it's `nil`, then the tree
	// has no weight.
	weight *float64
}

var ErrSharedNode = errors.New("newick: node appears more than once in tree")

// NewTree builds a tree over `root`. Every node reachable from `root` must be
// reachable exactly once; ErrSharedNode is returned otherwise.
func NewTree(name string, rooting Rooting, root *Node) (*Tree, error) {
	if root == nil {
		return nil, errors.New("newick: tree has no root")
	}
	seen := make(map[*Node]bool)
	for n := range root.PreOrder() {
		if seen[n] {
			return nil, ErrSharedNode
		}
		seen[n] = true
	}
	return &Tree{name: name, rooting: rooting, root: root}, nil
}

// WithWeight returns a copy of the tree carrying weight `w`. Both trees share
// their nodes.
func (t *Tree) WithWeight(w float64) *Tree {
	cp := *t
	cp.weight = &w
	return &cp
}

// Name returns the tree name, which is empty for plain Newick trees.
func (t *Tree) Name() string {
	return t.name
}

// Rooting returns the declared rooting of the tree.
func (t *Tree) Rooting() Rooting {
	return t.rooting
}

// Weight returns the tree weight, if one was given.
func (t *Tree) Weight() (float64, bool) {
	if t.weight == nil {
		return 0, false
	}
	return *t.weight, true
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// String converts a tree to a string, with whitespace indenting to indicate
// depth.
func (t *Tree) String() string {
	buf := new(bytes.Buffer)
	pf := func(format string, v ...interface{}) {
		fmt.Fprintf(buf, format, v...)
	}

	if len(t.name) > 0 {
		pf("%s (%s)\n", t.name, t.rooting)
	}
	type frame struct {
		n     *Node
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name, length := f.n.label, ""
		if len(name) == 0 {
			name = "N/A"
		}
		if l, ok := f.n.Length(); ok {
			length = fmt.Sprintf(" (%f)", l)
		}
		pf("%s%s%s\n", strings.Repeat("  ", f.depth), name, length)
		for i := len(f.n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.n.children[i], f.depth + 1})
		}
	}
	return buf.String()
}
