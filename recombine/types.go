// Package recombine - candidate, provenance and option types plus
// sentinel errors.
package recombine

import (
	"errors"

	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

var (
	// ErrInvariantViolation indicates a replay step produced (or would
	// produce) a structurally invalid working tree. It flags a bug in
	// dependency handling and is surfaced, never swallowed.
	ErrInvariantViolation = errors.New("recombine: intermediate tree invariant violated")

	// ErrNilScript indicates Generate was called without a script.
	ErrNilScript = errors.New("recombine: script is nil")

	// ErrBadFraction indicates a stopping fraction outside (0, 1].
	ErrBadFraction = errors.New("recombine: stopping fraction outside (0, 1]")

	// ErrCyclicDependencies indicates the operation dependency graph is
	// not acyclic — impossible for a well-formed script.
	ErrCyclicDependencies = errors.New("recombine: operation dependencies contain a cycle")
)

// Provenance records where a candidate came from.
type Provenance struct {
	// DishA, DishB name the dish pair being recombined.
	DishA, DishB string

	// RecipeA, RecipeB are the source recipe identifiers.
	RecipeA, RecipeB string

	// Version is the 1-based random trial index.
	Version int

	// Fraction is the stopping fraction of total cost the snapshot was
	// captured at (0 when Steps were used instead).
	Fraction float64

	// Step is the number of operations applied at capture.
	Step int
}

// Candidate is one intermediate tree plus its provenance and the
// structural hash used for deduplication.
type Candidate struct {
	Tree       *recipetree.Tree
	Hash       string
	Provenance Provenance
}

// PriorityPolicy biases the randomized walk among ready operations.
// Within each priority class the choice stays uniform, so the walk is
// still a valid random linear extension of the dependency order.
type PriorityPolicy struct {
	// EagerCoreInserts applies Insert/Rename operations introducing
	// core-tagged target ingredients as early as possible.
	EagerCoreInserts bool

	// LazyStructureDeletes applies Delete/Rename operations touching
	// structure-tagged source ingredients as late as possible.
	LazyStructureDeletes bool
}

// Options configures Generate.
type Options struct {
	// Seed drives all randomness; 0 selects a fixed default seed.
	// Per-trial streams are derived from it, never shared.
	Seed int64

	// Fractions are the stopping fractions of total accumulated cost at
	// which snapshots are captured. Empty selects DefaultFractions.
	Fractions []float64

	// Steps optionally snapshots after explicit operation counts instead
	// of cost fractions. When non-empty, Fractions are ignored.
	Steps []int

	// Trials is the number of independent randomized linear extensions
	// to replay (minimum 1).
	Trials int

	// Priority optionally biases the walk; nil means unbiased.
	Priority *PriorityPolicy

	// Provenance seeds the dish/recipe identity copied onto candidates.
	Provenance Provenance
}

// DefaultFractions captures candidates at a quarter, half and three
// quarters of the full edit distance.
var DefaultFractions = []float64{0.25, 0.5, 0.75}

// DefaultOptions returns the default generator configuration: three
// stopping fractions, one trial, the original priority bias enabled.
func DefaultOptions() Options {
	return Options{
		Fractions: append([]float64(nil), DefaultFractions...),
		Trials:    1,
		Priority:  &PriorityPolicy{EagerCoreInserts: true, LazyStructureDeletes: true},
	}
}
