package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/moranmiz/Cooking-Up-Creativity/corpus"
	"github.com/moranmiz/Cooking-Up-Creativity/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/novelty"
	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
	"github.com/moranmiz/Cooking-Up-Creativity/recombine"
)

// Combiner runs the whole recombination pipeline over a recipe collection.
type Combiner struct {
	// Config is the run configuration; never nil after NewCombiner.
	Config *Config

	// Parser turns raw recipes into trees; defaults to JSONParser.
	Parser Parser

	// Filter optionally gates candidates before scoring and rendering.
	Filter CoherenceFilter

	// Corpus optionally enables novelty scoring.
	Corpus corpus.Store
}

// NewCombiner builds a combiner with the built-in JSON parser. A nil cfg
// selects DefaultConfig.
func NewCombiner(cfg *Config) *Combiner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Combiner{Config: cfg, Parser: JSONParser{}}
}

// parsed is one recipe after the upfront parse+validate pass.
type parsed struct {
	recipe Recipe
	tree   *recipetree.Tree
	err    error
}

// task is one directed recipe pair to recombine.
type task struct {
	dishA, dishB string
	a, b         *parsed
}

// pairResult is one finished task, assembled into the output in task order.
type pairResult struct {
	pairKey string
	keys    []string
	ideas   map[string]Idea
	scores  map[string]float64
	skip    *Skip
}

// Run recombines every recipe pair across distinct dishes and returns the
// rendered ideas. Dish pairs follow the input's first-appearance order;
// with Config.Reverse each pair also runs in the opposite direction.
//
// Each task owns an RNG stream derived from (Config.Seed, task index), so
// the result is independent of worker scheduling. Malformed or oversized
// source trees skip their pairs (reported in Result.Skipped); filter and
// corpus failures abort the run.
func (c *Combiner) Run(ctx context.Context, recipes []Recipe) (*Result, error) {
	if c.Parser == nil {
		return nil, ErrNilParser
	}
	cfg := c.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Parse and validate each recipe once, keeping failures for the skip
	// list instead of aborting.
	var dishes []string
	byDish := make(map[string][]*parsed)
	for _, r := range recipes {
		p := &parsed{recipe: r}
		p.tree, p.err = c.Parser.ParseToTree(ctx, r)
		if p.err == nil {
			if err := recipetree.Validate(p.tree); err != nil {
				p.err = err
			}
		}
		if _, ok := byDish[r.Dish]; !ok {
			dishes = append(dishes, r.Dish)
		}
		byDish[r.Dish] = append(byDish[r.Dish], p)
	}
	if len(dishes) < 2 {
		return nil, ErrNoRecipes
	}

	costs, err := cfg.costPolicy()
	if err != nil {
		return nil, err
	}
	editOpts := cfg.editOptions(costs)
	novOpts := cfg.noveltyOptions()

	var tasks []task
	addDirection := func(dishA, dishB string) {
		for _, a := range byDish[dishA] {
			for _, b := range byDish[dishB] {
				tasks = append(tasks, task{dishA: dishA, dishB: dishB, a: a, b: b})
			}
		}
	}
	for i := 0; i < len(dishes); i++ {
		for j := i + 1; j < len(dishes); j++ {
			addDirection(dishes[i], dishes[j])
			if cfg.Reverse {
				addDirection(dishes[j], dishes[i])
			}
		}
	}

	results := make([]*pairResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}
	for i := range tasks {
		i := i
		g.Go(func() error {
			seed := recombine.DeriveSeed(cfg.Seed, uint64(i))
			res, err := c.runPair(gctx, cfg, tasks[i], seed, editOpts, novOpts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Ideas: make(Output), Scores: make(map[string]float64)}
	for _, res := range results {
		if res.skip != nil {
			out.Skipped = append(out.Skipped, *res.skip)
			continue
		}
		pair := out.Ideas[res.pairKey]
		if pair == nil {
			pair = make(map[string]Idea)
			out.Ideas[res.pairKey] = pair
		}
		for _, key := range res.keys {
			pair[key] = res.ideas[key]
			if s, ok := res.scores[key]; ok {
				out.Scores[res.pairKey+"/"+key] = s
			}
		}
	}

	return out, nil
}

// runPair recombines one directed recipe pair.
func (c *Combiner) runPair(ctx context.Context, cfg *Config, t task, seed int64, editOpts *editdist.Options, novOpts *novelty.Options) (*pairResult, error) {
	res := &pairResult{
		pairKey: t.dishA + "_to_" + t.dishB,
		ideas:   make(map[string]Idea),
		scores:  make(map[string]float64),
	}
	skip := func(reason string) *pairResult {
		res.skip = &Skip{
			DishA: t.dishA, DishB: t.dishB,
			RecipeA: t.a.recipe.ID, RecipeB: t.b.recipe.ID,
			Reason: reason,
		}
		return res
	}

	if t.a.err != nil {
		return skip(t.a.err.Error()), nil
	}
	if t.b.err != nil {
		return skip(t.b.err.Error()), nil
	}

	pa := recipetree.PrepareForRecombination(t.a.tree, "a")
	pb := recipetree.PrepareForRecombination(t.b.tree, "b")

	_, script, err := editdist.Distance(pa, pb, editOpts)
	if errors.Is(err, editdist.ErrOversizeInput) || errors.Is(err, recipetree.ErrMalformedTree) {
		return skip(err.Error()), nil
	}
	if err != nil {
		return nil, err
	}

	prov := recombine.Provenance{
		DishA: t.dishA, DishB: t.dishB,
		RecipeA: t.a.recipe.ID, RecipeB: t.b.recipe.ID,
	}
	cands, err := recombine.Generate(pa, pb, script, cfg.generateOptions(seed, prov))
	if err != nil {
		return nil, err
	}

	version := 0
	for _, cand := range cands {
		if c.Filter != nil {
			ok, err := c.Filter.Coherent(ctx, cand.Tree)
			if err != nil {
				return nil, fmt.Errorf("pipeline: coherence filter: %w", err)
			}
			if !ok {
				continue
			}
		}

		version++
		key := fmt.Sprintf("%s_to_%s_v%d", t.a.recipe.ID, t.b.recipe.ID, version)

		dict, err := json.Marshal(cand.Tree)
		if err != nil {
			return nil, fmt.Errorf("pipeline: render %s: %w", key, err)
		}
		res.keys = append(res.keys, key)
		res.ideas[key] = Idea{TreeDict: dict, TreeDotCode: recipetree.DotCode(cand.Tree)}

		if c.Corpus != nil {
			total, err := c.score(ctx, cfg, cand.Tree, novOpts)
			if err != nil {
				return nil, err
			}
			res.scores[key] = total
		}
	}

	return res, nil
}

// score computes the novelty total for one candidate. An empty corpus
// degrades rather than fails: ranking among degraded scores is still a
// ranking.
func (c *Combiner) score(ctx context.Context, cfg *Config, t *recipetree.Tree, novOpts *novelty.Options) (float64, error) {
	elements := novelty.Elements(t)
	table, pairs, err := c.Corpus.Snapshot(ctx, elements)
	if err != nil {
		return 0, fmt.Errorf("pipeline: corpus snapshot: %w", err)
	}

	rec, err := novelty.Score(t, table, novOpts)
	if err != nil && !errors.Is(err, novelty.ErrEmptyCorpus) {
		return 0, err
	}
	total := rec.Total

	if cfg.Novelty.Pairwise {
		prec, err := novelty.PairwiseScore(elements, pairs, novOpts)
		if err != nil && !errors.Is(err, novelty.ErrEmptyCorpus) {
			return 0, err
		}
		total += prec.Total
	}

	return total, nil
}
