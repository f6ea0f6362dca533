package novelty

import (
	"math"
	"sort"
)

// PairwiseScore computes the co-occurrence surprise record for a set of
// elements (one candidate's distinct ingredients) against pt.
//
// For each fixated element e with at least MinOccurrences corpus
// appearances, every companion e' contributes the normalized surprise
// log(N(e)/N(e,e')) / log(N(e)), clamped to [0, 1]; a pair the corpus has
// never seen counts as maximal surprise 1 (meaningful exactly because e
// itself is common enough to have had the chance). The element's score sums
// its TopK largest companion surprises; the record total sums the element
// scores.
//
// Elements below the rare-element floor are listed with score 0: their
// corpus statistics are too thin to call anything surprising.
func PairwiseScore(elements []string, pt *PairTable, opts *Options) (*Record, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.TopK == 0 {
		o.TopK = DefaultTopK
	}
	if o.MinOccurrences == 0 {
		o.MinOccurrences = DefaultMinOccurrences
	}

	distinct := dedupSorted(elements)

	if pt == nil || len(pt.Count) == 0 {
		rec := &Record{}
		for _, e := range distinct {
			rec.Contributions = append(rec.Contributions, Contribution{Element: e, Weight: DefaultWeight})
		}
		return rec, ErrEmptyCorpus
	}

	rec := &Record{}
	for _, e := range distinct {
		c := Contribution{Element: e, Weight: DefaultWeight}
		if ne := pt.Count[e]; ne >= o.MinOccurrences {
			c.Score = fixate(e, ne, distinct, pt, o.TopK)
		}
		rec.Contributions = append(rec.Contributions, c)
		rec.Total += c.Weighted()
	}

	sort.SliceStable(rec.Contributions, func(i, j int) bool {
		return rec.Contributions[i].Weighted() > rec.Contributions[j].Weighted()
	})

	return rec, nil
}

// fixate scores one element against its companions: top-K sum of clamped
// normalized surprises, evaluated in a deterministic order.
func fixate(e string, ne int, companions []string, pt *PairTable, topK int) float64 {
	surprises := make([]float64, 0, len(companions))
	for _, other := range companions {
		if other == e {
			continue
		}
		nep := pt.Pair[MakePair(e, other)]
		s := 1.0
		if nep > 0 {
			s = 0
			// ne == 1 carries no signal; only reachable when the caller
			// lowers the rare-element floor below its default.
			if denom := math.Log(float64(ne)); denom > 0 {
				s = math.Log(float64(ne)/float64(nep)) / denom
				if s < 0 {
					s = 0
				}
				if s > 1 {
					s = 1
				}
			}
		}
		surprises = append(surprises, s)
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(surprises)))
	if len(surprises) > topK {
		surprises = surprises[:topK]
	}

	total := 0.0
	for _, s := range surprises {
		total += s
	}

	return total
}

// dedupSorted returns the distinct elements in lexicographic order.
func dedupSorted(elements []string) []string {
	out := append([]string(nil), elements...)
	sort.Strings(out)
	n := 0
	for i, e := range out {
		if i == 0 || out[n-1] != e {
			out[n] = e
			n++
		}
	}

	return out[:n]
}
