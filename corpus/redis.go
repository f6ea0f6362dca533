package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/moranmiz/Cooking-Up-Creativity/novelty"
)

// Redis key layout. Element and pair counts live in hashes so a whole
// corpus stays at three keys; pair fields use the canonical "a|b" order.
const (
	redisMetaKey     = "corpus:meta"
	redisElementsKey = "corpus:elements"
	redisPairsKey    = "corpus:pairs"

	redisRecipesField = "recipes"
)

// RedisStore serves corpus statistics from Redis hashes, for corpora shared
// across processes. Read-mostly: Snapshot pipelines all lookups for a
// candidate's element set in one round trip.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing client; the caller owns its lifecycle.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// pairField is the hash field for an unordered element pair.
func pairField(e1, e2 string) string {
	key := novelty.MakePair(e1, e2)
	return key.A + "|" + key.B
}

// Recipes returns the corpus size (0 when the meta hash is absent).
func (r *RedisStore) Recipes(ctx context.Context) (int, error) {
	n, err := r.client.HGet(ctx, redisMetaKey, redisRecipesField).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("corpus: redis recipes: %w", err)
	}

	return n, nil
}

// ElementCount returns the document frequency of element (0 when unseen).
func (r *RedisStore) ElementCount(ctx context.Context, element string) (int, error) {
	n, err := r.client.HGet(ctx, redisElementsKey, element).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("corpus: redis element %q: %w", element, err)
	}

	return n, nil
}

// PairCount returns the co-occurrence count of the unordered pair.
func (r *RedisStore) PairCount(ctx context.Context, e1, e2 string) (int, error) {
	n, err := r.client.HGet(ctx, redisPairsKey, pairField(e1, e2)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("corpus: redis pair %q: %w", pairField(e1, e2), err)
	}

	return n, nil
}

// AddRecipe registers one recipe's element set, mirroring
// MemoryStore.AddRecipe, in a single pipeline.
func (r *RedisStore) AddRecipe(ctx context.Context, elements []string) error {
	distinct := make([]string, 0, len(elements))
	seen := make(map[string]bool, len(elements))
	for _, e := range elements {
		if !seen[e] {
			seen[e] = true
			distinct = append(distinct, e)
		}
	}

	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, redisMetaKey, redisRecipesField, 1)
	for i, a := range distinct {
		pipe.HIncrBy(ctx, redisElementsKey, a, 1)
		for _, b := range distinct[i+1:] {
			pipe.HIncrBy(ctx, redisPairsKey, pairField(a, b), 1)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("corpus: redis add recipe: %w", err)
	}

	return nil
}

// Snapshot materializes the frequency tables for elements. Lookups are
// pipelined: one round trip regardless of the element count.
func (r *RedisStore) Snapshot(ctx context.Context, elements []string) (*novelty.Table, *novelty.PairTable, error) {
	distinct := make([]string, 0, len(elements))
	seen := make(map[string]bool, len(elements))
	for _, e := range elements {
		if !seen[e] {
			seen[e] = true
			distinct = append(distinct, e)
		}
	}

	pipe := r.client.Pipeline()
	recipesCmd := pipe.HGet(ctx, redisMetaKey, redisRecipesField)
	elemCmds := make([]*redis.StringCmd, len(distinct))
	for i, e := range distinct {
		elemCmds[i] = pipe.HGet(ctx, redisElementsKey, e)
	}
	type pairLookup struct {
		key novelty.PairKey
		cmd *redis.StringCmd
	}
	var pairCmds []pairLookup
	for i, a := range distinct {
		for _, b := range distinct[i+1:] {
			pairCmds = append(pairCmds, pairLookup{
				key: novelty.MakePair(a, b),
				cmd: pipe.HGet(ctx, redisPairsKey, pairField(a, b)),
			})
		}
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, nil, fmt.Errorf("corpus: redis snapshot: %w", err)
	}

	n, err := intOrZero(recipesCmd)
	if err != nil {
		return nil, nil, err
	}
	t := &novelty.Table{Recipes: n, Freq: make(map[string]int, len(distinct))}
	pt := &novelty.PairTable{
		Count: make(map[string]int, len(distinct)),
		Pair:  make(map[novelty.PairKey]int),
	}
	for i, e := range distinct {
		c, err := intOrZero(elemCmds[i])
		if err != nil {
			return nil, nil, err
		}
		t.Freq[e] = c
		pt.Count[e] = c
	}
	for _, p := range pairCmds {
		c, err := intOrZero(p.cmd)
		if err != nil {
			return nil, nil, err
		}
		if c > 0 {
			pt.Pair[p.key] = c
		}
	}

	return t, pt, nil
}

// intOrZero decodes a pipelined HGET, treating a missing field as zero.
func intOrZero(cmd *redis.StringCmd) (int, error) {
	n, err := cmd.Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("corpus: redis decode: %w", err)
	}

	return n, nil
}

var _ Store = (*RedisStore)(nil)
