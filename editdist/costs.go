package editdist

import (
	"strings"

	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// Prohibitive is the default weight for renames the policy should never
// choose (it exceeds any realistic insert+delete combination).
const Prohibitive = 100000

// Costs is the default weighted cost policy.
//
// Rename cost composes additively from the dissimilarity of the pair:
// zero for an identical pair, plus Label when the digit-stripped labels
// differ, plus Abstraction when the abstraction categories differ, plus
// Tags when the tag sets differ. Renames across kinds (ingredient vs
// action) always cost CrossKind. All weights are configuration points;
// the zero value of each field is honored, use DefaultCosts for defaults.
type Costs struct {
	// Insert and Delete price node insertion/removal. Deliberately high by
	// default so the optimum prefers renames over insert+delete churn.
	Insert float64
	Delete float64

	// Label is added when digit-stripped labels differ.
	Label float64

	// Abstraction is added when abstraction categories differ.
	// Prohibitive by default: swapping "bread" for "heat" is not a rename.
	Abstraction float64

	// Tags is added when ingredient tag sets differ.
	Tags float64

	// CrossKind replaces the sum entirely when kinds differ.
	CrossKind float64
}

// DefaultCosts mirrors the weighting the recombination engine was tuned
// with: insert/delete 100, same-abstraction rename 5, cross-abstraction
// and cross-kind renames prohibitive, tags free.
func DefaultCosts() *Costs {
	return &Costs{
		Insert:      100,
		Delete:      100,
		Label:       5,
		Abstraction: Prohibitive,
		Tags:        0,
		CrossKind:   Prohibitive,
	}
}

// InsertCost implements CostPolicy.
func (c *Costs) InsertCost(_ *recipetree.Node) float64 { return c.Insert }

// DeleteCost implements CostPolicy.
func (c *Costs) DeleteCost(_ *recipetree.Node) float64 { return c.Delete }

// RenameCost implements CostPolicy.
func (c *Costs) RenameCost(from, to *recipetree.Node) float64 {
	if from.Kind != to.Kind {
		return c.CrossKind
	}

	cost := 0.0
	if stripDigits(from.Label) != stripDigits(to.Label) {
		cost += c.Label
	}
	if from.Abstraction != to.Abstraction {
		cost += c.Abstraction
	}
	if c.Tags != 0 && !sameTagSet(from.Tags, to.Tags) {
		cost += c.Tags
	}

	return cost
}

// stripDigits removes the disambiguation digits appended by label prep,
// so "sugar1" and "sugar2" rename for free.
func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

// sameTagSet compares tag slices as sets.
func sameTagSet(a, b []recipetree.Tag) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[recipetree.Tag]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	for _, t := range b {
		if !set[t] {
			return false
		}
	}
	return true
}
