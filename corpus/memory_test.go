package corpus_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moranmiz/Cooking-Up-Creativity/corpus"
	"github.com/moranmiz/Cooking-Up-Creativity/novelty"
)

// TestMemoryStore_AddRecipe verifies recipe, element and pair counting,
// including duplicate elements inside one recipe counting once.
func TestMemoryStore_AddRecipe(t *testing.T) {
	ctx := context.Background()
	s := corpus.NewMemoryStore()

	s.AddRecipe([]string{"bread", "salt", "bread"})
	s.AddRecipe([]string{"bread", "honey"})

	n, err := s.Recipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	c, err := s.ElementCount(ctx, "bread")
	require.NoError(t, err)
	assert.Equal(t, 2, c, "duplicates within a recipe count once")

	c, err = s.PairCount(ctx, "salt", "bread")
	require.NoError(t, err)
	assert.Equal(t, 1, c, "pair counting is order-insensitive")

	c, err = s.ElementCount(ctx, "saffron")
	require.NoError(t, err)
	assert.Equal(t, 0, c, "unknown elements count zero, not error")
}

// TestMemoryStore_Snapshot verifies materialized tables are restricted to
// the requested element set and carry only positive pair counts.
func TestMemoryStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	s := corpus.NewMemoryStore()
	s.AddRecipe([]string{"bread", "salt"})
	s.AddRecipe([]string{"bread", "honey"})

	table, pairs, err := s.Snapshot(ctx, []string{"bread", "salt", "saffron"})
	require.NoError(t, err)

	assert.Equal(t, 2, table.Recipes)
	assert.Equal(t, 2, table.Freq["bread"])
	assert.Equal(t, 0, table.Freq["saffron"])
	assert.NotContains(t, table.Freq, "honey", "snapshot is restricted to the requested set")

	assert.Equal(t, 1, pairs.Pair[novelty.MakePair("bread", "salt")])
	_, ok := pairs.Pair[novelty.MakePair("bread", "saffron")]
	assert.False(t, ok, "zero pairs are omitted")
}

// TestMemoryStore_JSONRoundTrip verifies LoadJSON merges a serialized
// snapshot back to equal counts.
func TestMemoryStore_JSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := corpus.NewMemoryStore()
	s.AddRecipe([]string{"bread", "salt"})
	s.AddRecipe([]string{"bread", "honey"})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	back := corpus.NewMemoryStore()
	require.NoError(t, back.LoadJSON(strings.NewReader(string(data))))

	n, _ := back.Recipes(ctx)
	assert.Equal(t, 2, n)
	c, _ := back.ElementCount(ctx, "bread")
	assert.Equal(t, 2, c)
	p, _ := back.PairCount(ctx, "bread", "salt")
	assert.Equal(t, 1, p)
}

// TestMemoryStore_LoadJSONMergesShards verifies loading two snapshots adds
// their counts.
func TestMemoryStore_LoadJSONMergesShards(t *testing.T) {
	ctx := context.Background()
	shard := `{"recipes":3,"elements":{"bread":2},"pairs":[{"a":"bread","b":"salt","count":1}]}`

	s := corpus.NewMemoryStore()
	require.NoError(t, s.LoadJSON(strings.NewReader(shard)))
	require.NoError(t, s.LoadJSON(strings.NewReader(shard)))

	n, _ := s.Recipes(ctx)
	assert.Equal(t, 6, n)
	c, _ := s.ElementCount(ctx, "bread")
	assert.Equal(t, 4, c)
	p, _ := s.PairCount(ctx, "salt", "bread")
	assert.Equal(t, 2, p)

	assert.Error(t, s.LoadJSON(strings.NewReader("{not json")), "malformed snapshot must error")
}
