package corpus

import (
	"context"

	"github.com/moranmiz/Cooking-Up-Creativity/novelty"
)

// Store serves corpus frequency statistics. Implementations must be safe
// for concurrent readers.
//
// Unknown elements and unseen pairs count zero; only transport or decoding
// failures are errors.
type Store interface {
	// Recipes returns the corpus size N.
	Recipes(ctx context.Context) (int, error)

	// ElementCount returns the number of corpus recipes containing element.
	ElementCount(ctx context.Context, element string) (int, error)

	// PairCount returns the number of corpus recipes containing both
	// elements (order-insensitive).
	PairCount(ctx context.Context, e1, e2 string) (int, error)

	// Snapshot materializes immutable frequency tables restricted to the
	// given element set, for handing to the novelty scorers.
	Snapshot(ctx context.Context, elements []string) (*novelty.Table, *novelty.PairTable, error)
}

// snapshot assembles the two table values from any Store; shared by both
// backends so their snapshots are structurally identical.
func snapshot(ctx context.Context, s Store, elements []string) (*novelty.Table, *novelty.PairTable, error) {
	n, err := s.Recipes(ctx)
	if err != nil {
		return nil, nil, err
	}

	t := &novelty.Table{Recipes: n, Freq: make(map[string]int, len(elements))}
	pt := &novelty.PairTable{
		Count: make(map[string]int, len(elements)),
		Pair:  make(map[novelty.PairKey]int),
	}

	seen := make(map[string]bool, len(elements))
	for _, e := range elements {
		if seen[e] {
			continue
		}
		seen[e] = true

		c, err := s.ElementCount(ctx, e)
		if err != nil {
			return nil, nil, err
		}
		t.Freq[e] = c
		pt.Count[e] = c
	}

	for _, a := range elements {
		for _, b := range elements {
			if b <= a {
				continue
			}
			key := novelty.MakePair(a, b)
			if _, ok := pt.Pair[key]; ok {
				continue
			}
			c, err := s.PairCount(ctx, a, b)
			if err != nil {
				return nil, nil, err
			}
			if c > 0 {
				pt.Pair[key] = c
			}
		}
	}

	return t, pt, nil
}
