package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

var (
	// ErrNoRecipes indicates Run was called with fewer than two dishes.
	ErrNoRecipes = errors.New("pipeline: need recipes from at least two dishes")

	// ErrNilParser indicates the combiner has no parser.
	ErrNilParser = errors.New("pipeline: parser is nil")
)

// Recipe is one input recipe: its dish, a stable identifier and the raw
// payload the Parser understands.
type Recipe struct {
	Dish string
	ID   string
	Raw  json.RawMessage
}

// Parser turns a raw recipe payload into a tree. Implementations may set
// whatever flags they like; the combiner re-validates every returned tree.
type Parser interface {
	ParseToTree(ctx context.Context, r Recipe) (*recipetree.Tree, error)
}

// CoherenceFilter gates candidates before scoring and rendering. How
// coherence is judged is the implementation's business; the combiner only
// consumes the verdict.
type CoherenceFilter interface {
	Coherent(ctx context.Context, t *recipetree.Tree) (bool, error)
}

// JSONParser decodes the external tree_dict schema. The zero value is
// ready to use and is the combiner's default parser.
type JSONParser struct{}

// ParseToTree implements Parser.
func (JSONParser) ParseToTree(_ context.Context, r Recipe) (*recipetree.Tree, error) {
	t := recipetree.New()
	if err := json.Unmarshal(r.Raw, t); err != nil {
		return nil, fmt.Errorf("pipeline: recipe %s/%s: %w", r.Dish, r.ID, err)
	}

	return t, nil
}

// Idea is one rendered output candidate.
type Idea struct {
	TreeDict    json.RawMessage `json:"tree_dict"`
	TreeDotCode string          `json:"tree_dot_code"`
}

// Output maps "<dishA>_to_<dishB>" to "<recipeA>_to_<recipeB>_v<i>" to the
// rendered idea.
type Output map[string]map[string]Idea

// Skip records one recipe pair excluded from the output and why.
type Skip struct {
	DishA, DishB     string
	RecipeA, RecipeB string
	Reason           string
}

// Result is a finished run: the rendered ideas, optional novelty totals
// keyed "<pair>/<version>", and the pairs that were skipped.
type Result struct {
	Ideas   Output
	Scores  map[string]float64
	Skipped []Skip
}
