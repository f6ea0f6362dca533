package editdist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moranmiz/Cooking-Up-Creativity/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// buildTree assembles and validates a tree from nodes.
func buildTree(t *testing.T, nodes ...*recipetree.Node) *recipetree.Tree {
	t.Helper()
	tree := recipetree.New()
	for _, n := range nodes {
		require.NoError(t, tree.Add(n))
	}
	require.NoError(t, recipetree.Validate(tree))
	return tree
}

func ingredient(key, label, abstr, parent string, tags ...recipetree.Tag) *recipetree.Node {
	return &recipetree.Node{
		Key: key, Label: label, Kind: recipetree.Ingredient,
		Abstraction: abstr, Parent: parent, Tags: tags,
	}
}

func action(key, label, parent string, children ...string) *recipetree.Node {
	return &recipetree.Node{
		Key: key, Label: label, Kind: recipetree.Action,
		Abstraction: label, Parent: parent, Children: children, Root: parent == "",
	}
}

// toastA is toast(bread, butter); toastB is toast(bread, oil) with oil in
// the same abstraction category as butter.
func toastA(t *testing.T) *recipetree.Tree {
	return buildTree(t,
		action("n0", "toast", "", "n1", "n2"),
		ingredient("n1", "bread", "bread", "n0", recipetree.TagStructure),
		ingredient("n2", "butter", "fat", "n0", recipetree.TagTaste),
	)
}

func toastB(t *testing.T) *recipetree.Tree {
	return buildTree(t,
		action("m0", "toast", "", "m1", "m2"),
		ingredient("m1", "bread", "bread", "m0", recipetree.TagStructure),
		ingredient("m2", "oil", "fat", "m0", recipetree.TagTaste),
	)
}

// unitCosts prices insert/delete/label-rename at 1 so scenario distances
// are easy to read; cross-abstraction and cross-kind renames stay
// prohibitive.
func unitCosts() *editdist.Costs {
	return &editdist.Costs{
		Insert: 1, Delete: 1, Label: 1,
		Abstraction: editdist.Prohibitive,
		CrossKind:   editdist.Prohibitive,
	}
}

func optsWith(c editdist.CostPolicy) *editdist.Options {
	o := editdist.DefaultOptions()
	o.Costs = c
	return &o
}

// TestDistance_SelfIsZero verifies self-distance is zero with a pure
// Match script.
func TestDistance_SelfIsZero(t *testing.T) {
	a := toastA(t)

	dist, script, err := editdist.Distance(a, a, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist, "self-distance must be zero")
	require.Len(t, script.Ops, 3)
	for _, op := range script.Ops {
		assert.Equal(t, editdist.OpMatch, op.Kind, "self-script holds only matches")
		assert.Equal(t, 0.0, op.Cost)
	}
}

// TestDistance_EmptyTrees covers the degenerate shapes: empty vs empty,
// empty vs populated in both directions.
func TestDistance_EmptyTrees(t *testing.T) {
	empty := recipetree.New()
	a := toastA(t)

	dist, script, err := editdist.Distance(empty, empty, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist)
	assert.Empty(t, script.Ops)

	dist, script, err = editdist.Distance(empty, a, optsWith(unitCosts()))
	require.NoError(t, err)
	assert.Equal(t, 3.0, dist, "building a 3-node tree from nothing costs 3 inserts")
	require.Len(t, script.Ops, 3)
	for _, op := range script.Ops {
		assert.Equal(t, editdist.OpInsert, op.Kind)
	}

	dist, script, err = editdist.Distance(a, empty, optsWith(unitCosts()))
	require.NoError(t, err)
	assert.Equal(t, 3.0, dist)
	for _, op := range script.Ops {
		assert.Equal(t, editdist.OpDelete, op.Kind)
	}
}

// TestDistance_RenameScenario pins the butter→oil scenario: same
// abstraction, different label, so the optimum is a single unit rename.
func TestDistance_RenameScenario(t *testing.T) {
	a, b := toastA(t), toastB(t)

	dist, script, err := editdist.Distance(a, b, optsWith(unitCosts()))
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist, "one same-category label change costs exactly 1")

	var renames, matches int
	for _, op := range script.Ops {
		switch op.Kind {
		case editdist.OpRename:
			renames++
			assert.Equal(t, "n2", op.From)
			assert.Equal(t, "m2", op.To)
			assert.Equal(t, 1.0, op.Cost)
		case editdist.OpMatch:
			matches++
		default:
			t.Fatalf("unexpected op kind %v", op.Kind)
		}
	}
	assert.Equal(t, 1, renames)
	assert.Equal(t, 2, matches)
}

// TestDistance_InsertScenario pins the 3-vs-4 node scenario: the larger
// tree differs by one extra leaf, so the optimum is a single insert whose
// op carries the target-side parent and sibling position.
func TestDistance_InsertScenario(t *testing.T) {
	a := toastA(t)
	b := buildTree(t,
		action("m0", "toast", "", "m1", "m2", "m3"),
		ingredient("m1", "bread", "bread", "m0", recipetree.TagStructure),
		ingredient("m2", "butter", "fat", "m0", recipetree.TagTaste),
		ingredient("m3", "salt", "salt", "m0", recipetree.TagTaste),
	)

	dist, script, err := editdist.Distance(a, b, optsWith(unitCosts()))
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist)

	var inserts int
	for _, op := range script.Ops {
		if op.Kind != editdist.OpInsert {
			assert.Equal(t, editdist.OpMatch, op.Kind)
			continue
		}
		inserts++
		assert.Equal(t, "m3", op.To)
		assert.Equal(t, "m0", op.Parent, "insert anchors at the target-side parent")
		assert.Equal(t, 2, op.Pos, "salt sits third among the parent's children")
	}
	assert.Equal(t, 1, inserts)
}

// TestDistance_Symmetry verifies distance symmetry under a symmetric cost
// policy (equal insert/delete weights, symmetric rename).
func TestDistance_Symmetry(t *testing.T) {
	a, b := toastA(t), toastB(t)

	fwd, _, err := editdist.Distance(a, b, optsWith(unitCosts()))
	require.NoError(t, err)
	rev, _, err := editdist.Distance(b, a, optsWith(unitCosts()))
	require.NoError(t, err)
	assert.Equal(t, fwd, rev, "symmetric costs must give a symmetric distance")
}

// TestDistance_Determinism verifies identical inputs produce identical
// scripts, op for op.
func TestDistance_Determinism(t *testing.T) {
	a, b := toastA(t), toastB(t)

	_, s1, err := editdist.Distance(a, b, optsWith(unitCosts()))
	require.NoError(t, err)
	_, s2, err := editdist.Distance(a, b, optsWith(unitCosts()))
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

// TestDistance_CrossKindAvoided verifies the optimum never renames an
// ingredient into an action while delete+insert is cheaper.
func TestDistance_CrossKindAvoided(t *testing.T) {
	leaf := ingredient("a", "salt", "salt", "")
	leaf.Root = true
	a := buildTree(t, leaf)
	b := buildTree(t,
		action("r", "mix", "", "c"),
		ingredient("c", "salt", "salt", "r"),
	)

	dist, script, err := editdist.Distance(a, b, optsWith(unitCosts()))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dist, 1e-9, "match the leaf, insert the action")
	for _, op := range script.Ops {
		if op.Kind == editdist.OpRename {
			from := a.Node(op.From)
			to := b.Node(op.To)
			assert.Equal(t, from.Kind, to.Kind, "renames must stay within a kind")
		}
	}
}

// TestDistance_InputErrors covers validation and the size bound.
func TestDistance_InputErrors(t *testing.T) {
	a := toastA(t)

	bad := recipetree.New()
	require.NoError(t, bad.Add(&recipetree.Node{Key: "x", Label: "x", Kind: recipetree.Ingredient}))
	_, _, err := editdist.Distance(bad, a, nil)
	assert.ErrorIs(t, err, recipetree.ErrMalformedTree, "rootless tree must be rejected")

	o := editdist.DefaultOptions()
	o.MaxTreeSize = 2
	_, _, err = editdist.Distance(a, a, &o)
	assert.ErrorIs(t, err, editdist.ErrOversizeInput)
}

// TestDefaultCosts_RenameComposition pins the additive rename pricing and
// the digit-stripping used after label disambiguation.
func TestDefaultCosts_RenameComposition(t *testing.T) {
	c := editdist.DefaultCosts()

	same := ingredient("a", "sugar1", "sugar", "")
	other := ingredient("b", "sugar2", "sugar", "")
	assert.Equal(t, 0.0, c.RenameCost(same, other), "disambiguation digits rename for free")

	oil := ingredient("c", "oil", "fat", "")
	butter := ingredient("d", "butter", "fat", "")
	assert.Equal(t, 5.0, c.RenameCost(butter, oil), "same-category label change costs the label weight")

	bread := ingredient("e", "bread", "bread", "")
	assert.GreaterOrEqual(t, c.RenameCost(butter, bread), float64(editdist.Prohibitive),
		"cross-category renames are prohibitive")

	mix := action("f", "mix", "")
	assert.Equal(t, float64(editdist.Prohibitive), c.RenameCost(butter, mix),
		"cross-kind renames are prohibitive")
}
