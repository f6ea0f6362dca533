package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/moranmiz/Cooking-Up-Creativity/novelty"
)

// MemoryStore holds corpus statistics in process memory. Safe for
// concurrent use; writes (AddRecipe, LoadJSON) take the write lock.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes int
	freq    map[string]int
	pairs   map[novelty.PairKey]int
}

// NewMemoryStore creates an empty in-memory corpus.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		freq:  make(map[string]int),
		pairs: make(map[novelty.PairKey]int),
	}
}

// corpusJSON is the persisted snapshot format.
type corpusJSON struct {
	Recipes  int            `json:"recipes"`
	Elements map[string]int `json:"elements"`
	Pairs    []pairJSON     `json:"pairs,omitempty"`
}

type pairJSON struct {
	A     string `json:"a"`
	B     string `json:"b"`
	Count int    `json:"count"`
}

// LoadJSON merges a persisted corpus snapshot into the store. Counts add
// onto existing ones, so several shards can be merged by loading each.
func (m *MemoryStore) LoadJSON(r io.Reader) error {
	var in corpusJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("corpus: decode snapshot: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.recipes += in.Recipes
	for e, c := range in.Elements {
		m.freq[e] += c
	}
	for _, p := range in.Pairs {
		m.pairs[novelty.MakePair(p.A, p.B)] += p.Count
	}

	return nil
}

// MarshalJSON serializes the store in the LoadJSON format with pairs in
// canonical order, so snapshots are byte-stable.
func (m *MemoryStore) MarshalJSON() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := corpusJSON{Recipes: m.recipes, Elements: m.freq}
	for key, c := range m.pairs {
		out.Pairs = append(out.Pairs, pairJSON{A: key.A, B: key.B, Count: c})
	}
	sort.Slice(out.Pairs, func(i, j int) bool {
		if out.Pairs[i].A != out.Pairs[j].A {
			return out.Pairs[i].A < out.Pairs[j].A
		}
		return out.Pairs[i].B < out.Pairs[j].B
	})

	return json.Marshal(out)
}

// AddRecipe registers one recipe's element set: the recipe count rises by
// one, each distinct element's count by one, and each distinct unordered
// element pair's count by one.
func (m *MemoryStore) AddRecipe(elements []string) {
	distinct := make([]string, 0, len(elements))
	seen := make(map[string]bool, len(elements))
	for _, e := range elements {
		if !seen[e] {
			seen[e] = true
			distinct = append(distinct, e)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.recipes++
	for i, a := range distinct {
		m.freq[a]++
		for _, b := range distinct[i+1:] {
			m.pairs[novelty.MakePair(a, b)]++
		}
	}
}

// Recipes returns the corpus size.
func (m *MemoryStore) Recipes(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.recipes, nil
}

// ElementCount returns the document frequency of element (0 when unseen).
func (m *MemoryStore) ElementCount(ctx context.Context, element string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.freq[element], nil
}

// PairCount returns the co-occurrence count of the unordered pair.
func (m *MemoryStore) PairCount(ctx context.Context, e1, e2 string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pairs[novelty.MakePair(e1, e2)], nil
}

// Snapshot materializes the frequency tables for elements.
func (m *MemoryStore) Snapshot(ctx context.Context, elements []string) (*novelty.Table, *novelty.PairTable, error) {
	return snapshot(ctx, m, elements)
}

var _ Store = (*MemoryStore)(nil)
