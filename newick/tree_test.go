package newick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func length(l float64) *float64 {
	return &l
}

func labels(seq func(func(*Node) bool)) []string {
	var out []string
	for n := range seq {
		out = append(out, n.Label())
	}
	return out
}

func TestTraversals(t *testing.T) {
	tree, err := Parse("((A,B)X,(C,(D,E)Y)Z)R;")
	require.NoError(t, err)

	assert.Equal(t, []string{"R", "X", "A", "B", "Z", "C", "Y", "D", "E"},
		labels(tree.PreOrder()))
	assert.Equal(t, []string{"A", "B", "X", "C", "D", "E", "Y", "Z", "R"},
		labels(tree.PostOrder()))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, labels(tree.Leaves()))
	assert.Equal(t, []string{"X", "Z"}, labels(tree.Root().Children()))

	// Sequences start over on every range.
	assert.Equal(t, labels(tree.PostOrder()), labels(tree.PostOrder()))

	// Early termination.
	var first []string
	for n := range tree.PostOrder() {
		first = append(first, n.Label())
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, first)
}

func TestPathLength(t *testing.T) {
	tree, err := Parse("((A:1,B:2)X:3,(C:4,D)Y:0.5)R:100;")
	require.NoError(t, err)

	tests := []struct {
		taxon string
		want  float64
	}{
		{"A", 4},
		{"B", 5},
		{"C", 4.5},
		{"D", 0.5},
	}
	for _, tt := range tests {
		leaf, ok := tree.Find(tt.taxon)
		require.True(t, ok, tt.taxon)
		got, ok := tree.PathLength(leaf)
		require.True(t, ok, tt.taxon)
		assert.InDelta(t, tt.want, got, 1e-12, tt.taxon)
	}

	got, ok := tree.PathLength(tree.Root())
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)

	_, ok = tree.PathLength(NewLeaf("A", nil))
	assert.False(t, ok)

	assert.InDelta(t, 5.0, tree.Height(), 1e-12)
}

func TestFind(t *testing.T) {
	tree, err := Parse("((A,B)X,C);")
	require.NoError(t, err)

	_, ok := tree.Find("X")
	assert.False(t, ok, "internal labels are not taxa")
	n, ok := tree.Find("C")
	require.True(t, ok)
	assert.True(t, n.IsLeaf())
}

func TestNewTree(t *testing.T) {
	a := NewLeaf("A", length(1))
	b := NewLeaf("B", nil)
	root := NewInternal("", nil, a, b)

	tree, err := NewTree("built", Rooted, root)
	require.NoError(t, err)
	assert.Equal(t, "built", tree.Name())
	assert.Equal(t, Rooted, tree.Rooting())
	assert.Equal(t, "[&R] (A:1,B);", tree.Newick())

	_, err = NewTree("shared", Rooted, NewInternal("", nil, a, a))
	assert.ErrorIs(t, err, ErrSharedNode)

	_, err = NewTree("nested", Rooted, NewInternal("", nil, root, a))
	assert.ErrorIs(t, err, ErrSharedNode)

	_, err = NewTree("empty", Rooted, nil)
	assert.Error(t, err)

	assert.Panics(t, func() { NewInternal("", nil) })
}

func TestNodeCopiesInput(t *testing.T) {
	l := 2.5
	leaf := NewLeaf("A", &l)
	l = 7
	got, ok := leaf.Length()
	require.True(t, ok)
	assert.Equal(t, 2.5, got)

	kids := []*Node{NewLeaf("A", nil), NewLeaf("B", nil)}
	n := NewInternal("", nil, kids...)
	kids[0] = NewLeaf("Z", nil)
	assert.Equal(t, "A", n.Child(0).Label())
}

func TestRootingOf(t *testing.T) {
	assert.Equal(t, Rooted, RootingOf([]string{" &R "}))
	assert.Equal(t, Unrooted, RootingOf([]string{"&R", "&u"}))
	assert.Equal(t, RootingUnknown, RootingOf([]string{"&W 1"}))
	assert.Equal(t, RootingUnknown, RootingOf(nil))
	assert.Equal(t, "unknown", RootingUnknown.String())
}

func TestRootingPolicyApply(t *testing.T) {
	tests := []struct {
		policy RootingPolicy
		want   [3]Rooting // for RootingUnknown, Rooted, Unrooted
	}{
		{RootingAsDeclared, [3]Rooting{RootingUnknown, Rooted, Unrooted}},
		{DefaultRooted, [3]Rooting{Rooted, Rooted, Unrooted}},
		{DefaultUnrooted, [3]Rooting{Unrooted, Rooted, Unrooted}},
		{ForceRooted, [3]Rooting{Rooted, Rooted, Rooted}},
		{ForceUnrooted, [3]Rooting{Unrooted, Unrooted, Unrooted}},
	}
	for _, tt := range tests {
		for i, declared := range []Rooting{RootingUnknown, Rooted, Unrooted} {
			assert.Equal(t, tt.want[i], tt.policy.Apply(declared),
				"policy %d, declared %s", tt.policy, declared)
		}
	}
}

func TestWithWeight(t *testing.T) {
	tree, err := Parse("(A,B);")
	require.NoError(t, err)
	_, ok := tree.Weight()
	assert.False(t, ok)

	weighted := tree.WithWeight(0.5)
	w, ok := weighted.Weight()
	require.True(t, ok)
	assert.Equal(t, 0.5, w)
	assert.Same(t, tree.Root(), weighted.Root())

	_, ok = tree.Weight()
	assert.False(t, ok, "original is unchanged")
}

func TestTreeString(t *testing.T) {
	tree, err := Parse("(A:1,(B,C))R;")
	require.NoError(t, err)
	want := "R\n" +
		"  A (1.000000)\n" +
		"  N/A\n" +
		"    B\n" +
		"    C\n"
	assert.Equal(t, want, tree.String())
}
