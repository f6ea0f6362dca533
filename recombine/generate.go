package recombine

import (
	"fmt"
	"sort"

	"github.com/moranmiz/Cooking-Up-Creativity/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// Generate replays randomized linear extensions of script (which transforms
// a into b) and returns the intermediate trees captured at the configured
// stopping points, deduplicated by structural hash per stopping point.
//
// The candidate order is deterministic: trials ascending, stopping points
// ascending within a trial. Every emitted tree passes structural validation;
// a snapshot that does not yields ErrInvariantViolation.
// Complexity: O(T · (S² + S·V))
func Generate(a, b *recipetree.Tree, script *editdist.Script, opts *Options) ([]Candidate, error) {
	if script == nil {
		return nil, ErrNilScript
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if len(o.Fractions) == 0 && len(o.Steps) == 0 {
		o.Fractions = append([]float64(nil), DefaultFractions...)
	}
	if o.Trials < 1 {
		o.Trials = 1
	}
	for _, f := range o.Fractions {
		if f <= 0 || f > 1 {
			return nil, fmt.Errorf("%w: %v", ErrBadFraction, f)
		}
	}

	if err := recipetree.Validate(a); err != nil {
		return nil, fmt.Errorf("tree A: %w", err)
	}
	if err := recipetree.Validate(b); err != nil {
		return nil, fmt.Errorf("tree B: %w", err)
	}

	fractions := append([]float64(nil), o.Fractions...)
	sort.Float64s(fractions)
	steps := append([]int(nil), o.Steps...)
	sort.Ints(steps)

	g := BuildDependencies(script, a)
	seed := o.Seed
	if seed == 0 {
		seed = defaultRNGSeed
	}

	var out []Candidate
	seen := make(map[string]bool)

	for trial := 1; trial <= o.Trials; trial++ {
		rng := rngFromSeed(DeriveSeed(seed, uint64(trial)))
		order, err := g.LinearExtension(rng, o.Priority, a, b)
		if err != nil {
			return nil, err
		}

		st := newReplay(a, b)
		cum := 0.0
		applied := 0
		nextFrac, nextStep := 0, 0
		var deferred []editdist.Op

		snapshot := func(label string, frac float64) error {
			tree := st.work.Clone()
			if err := recipetree.ValidateStructure(tree); err != nil {
				return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
			}
			hash := recipetree.StructuralHash(tree)
			key := label + "|" + hash
			if seen[key] {
				return nil
			}
			seen[key] = true

			p := o.Provenance
			p.Version = trial
			p.Fraction = frac
			p.Step = applied
			out = append(out, Candidate{Tree: tree, Hash: hash, Provenance: p})

			return nil
		}

		// checkpoints fires every stopping point crossed by the current
		// accumulated cost and operation count.
		checkpoints := func() error {
			if len(steps) > 0 {
				for nextStep < len(steps) && applied >= steps[nextStep] {
					if err := snapshot(fmt.Sprintf("s%d", steps[nextStep]), 0); err != nil {
						return err
					}
					nextStep++
				}
				return nil
			}
			for nextFrac < len(fractions) && cum >= fractions[nextFrac]*script.Distance {
				if err := snapshot(fmt.Sprintf("f%v", fractions[nextFrac]), fractions[nextFrac]); err != nil {
					return err
				}
				nextFrac++
			}
			return nil
		}

		account := func(op editdist.Op) error {
			cum += op.Cost
			applied++
			return checkpoints()
		}

		// Degenerate script: every stopping point is tree A itself.
		if err := checkpoints(); err != nil {
			return nil, err
		}

		for _, idx := range order {
			ok, err := st.apply(g.ops[idx])
			if err != nil {
				return nil, err
			}
			if !ok {
				deferred = append(deferred, g.ops[idx])
				continue
			}
			if err := account(g.ops[idx]); err != nil {
				return nil, err
			}

			// Retry deferred operations in FIFO order until a full pass
			// applies none of them.
			for progress := true; progress && len(deferred) > 0; {
				progress = false
				rest := deferred[:0]
				for _, op := range deferred {
					ok, err := st.apply(op)
					if err != nil {
						return nil, err
					}
					if !ok {
						rest = append(rest, op)
						continue
					}
					progress = true
					if err := account(op); err != nil {
						return nil, err
					}
				}
				deferred = rest
			}
		}

		if len(deferred) > 0 {
			return nil, fmt.Errorf("%w: %d operations never became applicable", ErrInvariantViolation, len(deferred))
		}
	}

	return out, nil
}

// FinalTree replays the whole script once in its recorded order and returns
// the resulting tree. Used by tests to assert that a full replay reproduces
// tree B up to structural hash.
func FinalTree(a, b *recipetree.Tree, script *editdist.Script) (*recipetree.Tree, error) {
	if script == nil {
		return nil, ErrNilScript
	}

	st := newReplay(a, b)
	deferred := append([]editdist.Op(nil), script.Ops...)
	for progress := true; progress && len(deferred) > 0; {
		progress = false
		rest := deferred[:0]
		for _, op := range deferred {
			ok, err := st.apply(op)
			if err != nil {
				return nil, err
			}
			if !ok {
				rest = append(rest, op)
				continue
			}
			progress = true
		}
		deferred = rest
	}
	if len(deferred) > 0 {
		return nil, fmt.Errorf("%w: %d operations never became applicable", ErrInvariantViolation, len(deferred))
	}
	if err := recipetree.ValidateStructure(st.work); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	return st.work, nil
}
