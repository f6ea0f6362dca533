package novelty_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moranmiz/Cooking-Up-Creativity/novelty"
	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// seasonedToast builds toast(bread, <seasoning>) with the seasoning tagged
// core, the shape behind the saffron-vs-salt ranking scenario.
func seasonedToast(t *testing.T, seasoning string) *recipetree.Tree {
	t.Helper()
	tree := recipetree.New()
	require.NoError(t, tree.Add(&recipetree.Node{
		Key: "r", Label: "toast", Kind: recipetree.Action, Abstraction: "heat",
		Root: true, Children: []string{"b", "s"},
	}))
	require.NoError(t, tree.Add(&recipetree.Node{
		Key: "b", Label: "bread", Kind: recipetree.Ingredient, Abstraction: "bread",
		Parent: "r", Tags: []recipetree.Tag{recipetree.TagStructure},
	}))
	require.NoError(t, tree.Add(&recipetree.Node{
		Key: "s", Label: seasoning, Kind: recipetree.Ingredient, Abstraction: seasoning,
		Parent: "r", Tags: []recipetree.Tag{recipetree.TagCore},
	}))
	require.NoError(t, recipetree.Validate(tree))
	return tree
}

// table builds a 100-recipe corpus where bread and salt are staples and
// saffron is unseen.
func table() *novelty.Table {
	return &novelty.Table{
		Recipes: 100,
		Freq:    map[string]int{"bread": 80, "salt": 90},
	}
}

// TestScore_Monotonicity verifies rarer elements never score below more
// common ones, with the unseen element at the cap.
func TestScore_Monotonicity(t *testing.T) {
	tab := &novelty.Table{Recipes: 100, Freq: map[string]int{"a": 0, "b": 1, "c": 50, "d": 100}}

	score := func(df int) float64 {
		return math.Log(float64(tab.Recipes) / float64(1+df))
	}
	assert.Greater(t, score(0), score(1))
	assert.Greater(t, score(1), score(50))
	assert.Greater(t, score(50), score(99))
	assert.GreaterOrEqual(t, score(99), 0.0)
}

// TestScore_SaffronBeatsSalt pins the ranking scenario: saffron toast must
// outrank salt toast against a corpus where salt is a staple.
func TestScore_SaffronBeatsSalt(t *testing.T) {
	tab := table()

	saffron, err := novelty.Score(seasonedToast(t, "saffron"), tab, nil)
	require.NoError(t, err)
	salt, err := novelty.Score(seasonedToast(t, "salt"), tab, nil)
	require.NoError(t, err)

	assert.Greater(t, saffron.Total, salt.Total, "unseen saffron must outrank staple salt")
}

// TestScore_ContributionOrder verifies contributions come back sorted by
// descending weighted score, with the action verb scored as an element of
// its own at the default weight.
func TestScore_ContributionOrder(t *testing.T) {
	rec, err := novelty.Score(seasonedToast(t, "saffron"), table(), nil)
	require.NoError(t, err)
	require.Len(t, rec.Contributions, 3, "ingredients and actions both contribute")

	assert.Equal(t, "saffron", rec.Contributions[0].Element)
	assert.Equal(t, "toast", rec.Contributions[1].Element, "the unseen verb outranks staple bread")
	assert.Equal(t, "bread", rec.Contributions[2].Element)
	assert.Equal(t, 2.0, rec.Contributions[0].Weight, "core tag doubles the weight")
	assert.Equal(t, novelty.DefaultWeight, rec.Contributions[1].Weight, "actions carry no tags")
}

// TestScore_ClampsNegative verifies an element more frequent than the
// corpus size cannot push a contribution below zero.
func TestScore_ClampsNegative(t *testing.T) {
	tab := &novelty.Table{Recipes: 10, Freq: map[string]int{"salt": 10, "bread": 10}}

	rec, err := novelty.Score(seasonedToast(t, "salt"), tab, nil)
	require.NoError(t, err)
	for _, c := range rec.Contributions {
		assert.GreaterOrEqual(t, c.Score, 0.0)
	}
}

// TestScore_EmptyCorpus verifies the degraded record: every element at the
// unseen cap, plus ErrEmptyCorpus.
func TestScore_EmptyCorpus(t *testing.T) {
	rec, err := novelty.Score(seasonedToast(t, "saffron"), &novelty.Table{}, nil)
	assert.ErrorIs(t, err, novelty.ErrEmptyCorpus)
	require.NotNil(t, rec, "degraded record still returned")
	for _, c := range rec.Contributions {
		assert.Equal(t, novelty.DefaultUnseenCap, c.Score)
	}
}

// TestElements extracts elements in preorder: the action's label, the
// ingredients' abstractions.
func TestElements(t *testing.T) {
	got := novelty.Elements(seasonedToast(t, "saffron"))
	assert.Equal(t, []string{"toast", "bread", "saffron"}, got)
}

// TestPairwiseScore_SurpriseOrdering verifies a corpus-common element in
// unseen company outranks one in familiar company.
func TestPairwiseScore_SurpriseOrdering(t *testing.T) {
	pt := &novelty.PairTable{
		Count: map[string]int{"bread": 80, "salt": 90, "honey": 40},
		Pair: map[novelty.PairKey]int{
			novelty.MakePair("bread", "salt"): 70,
			// bread+honey never co-occur.
		},
	}

	familiar, err := novelty.PairwiseScore([]string{"bread", "salt"}, pt, nil)
	require.NoError(t, err)
	surprising, err := novelty.PairwiseScore([]string{"bread", "honey"}, pt, nil)
	require.NoError(t, err)

	assert.Greater(t, surprising.Total, familiar.Total,
		"an unseen pairing must register more surprise than a staple pairing")
}

// TestPairwiseScore_RareElementFloor verifies elements under the
// occurrence floor do not get fixated.
func TestPairwiseScore_RareElementFloor(t *testing.T) {
	pt := &novelty.PairTable{
		Count: map[string]int{"bread": 80, "unicorn": 1},
	}

	rec, err := novelty.PairwiseScore([]string{"bread", "unicorn"}, pt, nil)
	require.NoError(t, err)
	for _, c := range rec.Contributions {
		if c.Element == "unicorn" {
			assert.Equal(t, 0.0, c.Score, "rare elements carry no pairwise signal")
		}
	}
}

// TestPairwiseScore_EmptyCorpus verifies the sentinel on an empty pair
// table.
func TestPairwiseScore_EmptyCorpus(t *testing.T) {
	_, err := novelty.PairwiseScore([]string{"bread"}, &novelty.PairTable{}, nil)
	assert.ErrorIs(t, err, novelty.ErrEmptyCorpus)
}

// TestPairwiseScore_Bounds verifies per-pair surprise stays in [0, 1] and
// the per-element total respects the top-K bound.
func TestPairwiseScore_Bounds(t *testing.T) {
	pt := &novelty.PairTable{
		Count: map[string]int{"a": 50, "b": 50, "c": 50, "d": 50},
		Pair: map[novelty.PairKey]int{
			novelty.MakePair("a", "b"): 50,
			novelty.MakePair("a", "c"): 1,
		},
	}
	opts := novelty.DefaultOptions()
	opts.TopK = 2

	rec, err := novelty.PairwiseScore([]string{"a", "b", "c", "d"}, pt, &opts)
	require.NoError(t, err)
	for _, c := range rec.Contributions {
		assert.GreaterOrEqual(t, c.Score, 0.0)
		assert.LessOrEqual(t, c.Score, float64(opts.TopK), "top-K sum of [0,1] surprises")
	}
}
