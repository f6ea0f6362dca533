package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moranmiz/Cooking-Up-Creativity/corpus"
	"github.com/moranmiz/Cooking-Up-Creativity/pipeline"
	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// rawTree marshals a built tree into the tree_dict payload format.
func rawTree(t *testing.T, nodes ...*recipetree.Node) json.RawMessage {
	t.Helper()
	tree := recipetree.New()
	for _, n := range nodes {
		require.NoError(t, tree.Add(n))
	}
	require.NoError(t, recipetree.Validate(tree))
	data, err := json.Marshal(tree)
	require.NoError(t, err)
	return data
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

// fixtureRecipes builds one toast recipe and one salad recipe.
func fixtureRecipes(t *testing.T) []pipeline.Recipe {
	t.Helper()
	toast := rawTree(t,
		action("r", "toast", "", "b", "u"),
		ingredient("b", "bread", "bread", "r", recipetree.TagStructure),
		ingredient("u", "butter", "fat", "r", recipetree.TagTaste),
	)
	salad := rawTree(t,
		action("r", "mix", "", "l", "o"),
		ingredient("l", "lettuce", "lettuce", "r", recipetree.TagStructure),
		ingredient("o", "oil", "fat", "r", recipetree.TagCore),
	)
	return []pipeline.Recipe{
		{Dish: "toast", ID: "recipe_1", Raw: toast},
		{Dish: "salad", ID: "recipe_2", Raw: salad},
	}
}

// TestParseConfig_Defaults verifies unset fields fall back to defaults and
// set fields override them, for both YAML and JSON syntax.
func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := pipeline.ParseConfig([]byte("seed: 9\nversions: 5\nfractions: [0.5]\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 5, cfg.Versions)
	assert.Equal(t, []float64{0.5}, cfg.Fractions)
	assert.True(t, cfg.Priority.EagerCoreInserts, "defaults survive partial configs")

	jsonCfg, err := pipeline.ParseConfig([]byte(`{"seed": 9, "versions": 5}`))
	require.NoError(t, err)
	assert.Equal(t, cfg.Seed, jsonCfg.Seed)
	assert.Equal(t, cfg.Versions, jsonCfg.Versions)

	off, err := pipeline.ParseConfig([]byte("reverse: false\n"))
	require.NoError(t, err)
	assert.False(t, off.Reverse, "explicit false overrides the reverse default")

	_, err = pipeline.ParseConfig([]byte(":::"))
	assert.Error(t, err)
}

// TestParseConfig_CostOverrides verifies weight overrides honor explicit
// zeros via optional fields.
func TestParseConfig_CostOverrides(t *testing.T) {
	cfg, err := pipeline.ParseConfig([]byte("costs:\n  insert: 1\n  label: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Costs.Insert)
	assert.Equal(t, 1.0, *cfg.Costs.Insert)
	require.NotNil(t, cfg.Costs.Label)
	assert.Equal(t, 0.0, *cfg.Costs.Label, "explicit zero is an override, not a default")
	assert.Nil(t, cfg.Costs.Delete)
}

// TestCombiner_OutputFormat verifies the external output layout: pair keys,
// versioned idea keys, tree_dict plus DOT code per idea.
func TestCombiner_OutputFormat(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.Seed = 21
	cfg.Versions = 2
	c := pipeline.NewCombiner(cfg)

	res, err := c.Run(context.Background(), fixtureRecipes(t))
	require.NoError(t, err)
	require.Empty(t, res.Skipped)

	pair, ok := res.Ideas["toast_to_salad"]
	require.True(t, ok, "pair key is <dishA>_to_<dishB>")
	require.NotEmpty(t, pair)

	for key, idea := range pair {
		assert.Regexp(t, `^recipe_1_to_recipe_2_v\d+$`, key)
		assert.Contains(t, idea.TreeDotCode, "rankdir=BT")

		tree := recipetree.New()
		require.NoError(t, json.Unmarshal(idea.TreeDict, tree))
		assert.NoError(t, recipetree.ValidateStructure(tree), "rendered tree_dict must decode to a valid tree")
	}
}

// TestCombiner_Deterministic verifies two runs with the same seed produce
// identical output regardless of worker scheduling.
func TestCombiner_Deterministic(t *testing.T) {
	run := func(concurrency int) *pipeline.Result {
		cfg := pipeline.DefaultConfig()
		cfg.Seed = 5
		cfg.Versions = 3
		cfg.Concurrency = concurrency
		res, err := pipeline.NewCombiner(cfg).Run(context.Background(), fixtureRecipes(t))
		require.NoError(t, err)
		return res
	}

	sequential := run(1)
	parallel := run(4)
	assert.Equal(t, sequential.Ideas, parallel.Ideas, "scheduling must not change a single byte")
}

// TestCombiner_Reverse verifies both directions run by default and that
// disabling reverse keeps only the forward pair.
func TestCombiner_Reverse(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.Seed = 2

	res, err := pipeline.NewCombiner(cfg).Run(context.Background(), fixtureRecipes(t))
	require.NoError(t, err)
	assert.Contains(t, res.Ideas, "toast_to_salad")
	assert.Contains(t, res.Ideas, "salad_to_toast", "the mirrored direction runs by default")

	cfg = pipeline.DefaultConfig()
	cfg.Seed = 2
	cfg.Reverse = false
	res, err = pipeline.NewCombiner(cfg).Run(context.Background(), fixtureRecipes(t))
	require.NoError(t, err)
	assert.Contains(t, res.Ideas, "toast_to_salad")
	assert.NotContains(t, res.Ideas, "salad_to_toast")
}

// TestCombiner_SkipsMalformed verifies a malformed source recipe skips its
// pairs with a reported reason instead of failing the run.
func TestCombiner_SkipsMalformed(t *testing.T) {
	recipes := fixtureRecipes(t)
	recipes = append(recipes, pipeline.Recipe{Dish: "mystery", ID: "recipe_3", Raw: json.RawMessage(`{"x":{"label":"a","root":false,"type":"ingredient","abstr":"a","parent":null,"children":[]}}`)})

	cfg := pipeline.DefaultConfig()
	cfg.Seed = 13
	res, err := pipeline.NewCombiner(cfg).Run(context.Background(), recipes)
	require.NoError(t, err)

	assert.Contains(t, res.Ideas, "toast_to_salad", "healthy pairs still run")
	require.Len(t, res.Skipped, 4, "the rootless recipe skips its pairs in both directions")
	for _, s := range res.Skipped {
		assert.True(t, s.RecipeA == "recipe_3" || s.RecipeB == "recipe_3",
			"every skip involves the malformed recipe")
		assert.NotEmpty(t, s.Reason)
	}
}

// TestCombiner_NeedsTwoDishes verifies the input sentinel.
func TestCombiner_NeedsTwoDishes(t *testing.T) {
	recipes := fixtureRecipes(t)[:1]
	_, err := pipeline.NewCombiner(nil).Run(context.Background(), recipes)
	assert.ErrorIs(t, err, pipeline.ErrNoRecipes)
}

// rejectAll fails every candidate.
type rejectAll struct{}

func (rejectAll) Coherent(context.Context, *recipetree.Tree) (bool, error) { return false, nil }

// TestCombiner_FilterGatesCandidates verifies a rejecting coherence filter
// empties the output without erroring.
func TestCombiner_FilterGatesCandidates(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.Seed = 3
	c := pipeline.NewCombiner(cfg)
	c.Filter = rejectAll{}

	res, err := c.Run(context.Background(), fixtureRecipes(t))
	require.NoError(t, err)
	assert.Empty(t, res.Ideas["toast_to_salad"], "rejected candidates are dropped silently")
	assert.Empty(t, res.Skipped, "filtering is not skipping")
}

// TestCombiner_ScoresWithCorpus verifies novelty totals appear when a
// corpus store is attached.
func TestCombiner_ScoresWithCorpus(t *testing.T) {
	store := corpus.NewMemoryStore()
	store.AddRecipe([]string{"bread", "butter"})
	store.AddRecipe([]string{"bread", "salt"})

	cfg := pipeline.DefaultConfig()
	cfg.Seed = 17
	cfg.Reverse = false // one direction keeps the score keys predictable
	c := pipeline.NewCombiner(cfg)
	c.Corpus = store

	res, err := c.Run(context.Background(), fixtureRecipes(t))
	require.NoError(t, err)
	require.NotEmpty(t, res.Ideas["toast_to_salad"])
	assert.NotEmpty(t, res.Scores, "each kept idea gets a novelty total")
	for key, score := range res.Scores {
		assert.Contains(t, key, "toast_to_salad/")
		assert.GreaterOrEqual(t, score, 0.0)
	}
}
