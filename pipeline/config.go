package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/moranmiz/Cooking-Up-Creativity/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/novelty"
	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
	"github.com/moranmiz/Cooking-Up-Creativity/recombine"
)

// Config is the run configuration (YAML or JSON).
type Config struct {
	// Seed drives every RNG stream of the run; 0 selects a fixed default.
	Seed int64 `yaml:"seed" json:"seed"`

	// Versions is the number of randomized versions per recipe pair.
	Versions int `yaml:"versions" json:"versions"`

	// Fractions are the stopping fractions of total edit cost.
	Fractions []float64 `yaml:"fractions" json:"fractions"`

	// MaxTreeSize bounds input tree node counts; 0 selects the engine
	// default.
	MaxTreeSize int `yaml:"max_tree_size" json:"max_tree_size"`

	// Concurrency bounds parallel pair tasks; 0 or 1 runs sequentially.
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// Reverse additionally recombines each dish pair in the B→A direction.
	// On by default; the two directions blend differently.
	Reverse bool `yaml:"reverse" json:"reverse"`

	// Costs overrides individual default cost weights (nil field = default).
	Costs CostConfig `yaml:"costs" json:"costs"`

	// CostExprs optionally replaces weights with CEL expressions; any
	// non-empty expression wins over the weight table for that operation.
	CostExprs CostExprConfig `yaml:"cost_exprs" json:"cost_exprs"`

	// Priority biases the randomized replay order.
	Priority PriorityConfig `yaml:"priority" json:"priority"`

	// Novelty configures scoring (used when the combiner has a corpus).
	Novelty NoveltyConfig `yaml:"novelty" json:"novelty"`
}

// CostConfig mirrors editdist.Costs with optional fields.
type CostConfig struct {
	Insert      *float64 `yaml:"insert" json:"insert,omitempty"`
	Delete      *float64 `yaml:"delete" json:"delete,omitempty"`
	Label       *float64 `yaml:"label" json:"label,omitempty"`
	Abstraction *float64 `yaml:"abstraction" json:"abstraction,omitempty"`
	Tags        *float64 `yaml:"tags" json:"tags,omitempty"`
	CrossKind   *float64 `yaml:"cross_kind" json:"cross_kind,omitempty"`
}

// CostExprConfig carries CEL cost expressions (see editdist.ExprCosts).
type CostExprConfig struct {
	Insert string `yaml:"insert" json:"insert,omitempty"`
	Delete string `yaml:"delete" json:"delete,omitempty"`
	Rename string `yaml:"rename" json:"rename,omitempty"`
}

// PriorityConfig mirrors recombine.PriorityPolicy.
type PriorityConfig struct {
	EagerCoreInserts     bool `yaml:"eager_core_inserts" json:"eager_core_inserts"`
	LazyStructureDeletes bool `yaml:"lazy_structure_deletes" json:"lazy_structure_deletes"`
}

// NoveltyConfig mirrors novelty.Options plus the pairwise toggle.
type NoveltyConfig struct {
	Weights        map[string]float64 `yaml:"weights" json:"weights,omitempty"`
	TopK           int                `yaml:"top_k" json:"top_k,omitempty"`
	MinOccurrences int                `yaml:"min_occurrences" json:"min_occurrences,omitempty"`
	Pairwise       bool               `yaml:"pairwise" json:"pairwise"`
}

// DefaultConfig returns the configuration a run uses when no file is given:
// three versions per pair, default fractions, both directions per dish
// pair, both priority biases on.
func DefaultConfig() *Config {
	return &Config{
		Versions:  3,
		Fractions: append([]float64(nil), recombine.DefaultFractions...),
		Reverse:   true,
		Priority: PriorityConfig{
			EagerCoreInserts:     true,
			LazyStructureDeletes: true,
		},
	}
}

// LoadConfig reads a YAML configuration file. YAML being a JSON superset,
// plain JSON files load through the same path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML/JSON configuration bytes over the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("pipeline: parse config: %w", err)
	}

	return cfg, nil
}

// costPolicy assembles the edit-distance cost policy: CEL expressions when
// any is configured, the weight table otherwise.
func (c *Config) costPolicy() (editdist.CostPolicy, error) {
	weights := editdist.DefaultCosts()
	override := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	override(&weights.Insert, c.Costs.Insert)
	override(&weights.Delete, c.Costs.Delete)
	override(&weights.Label, c.Costs.Label)
	override(&weights.Abstraction, c.Costs.Abstraction)
	override(&weights.Tags, c.Costs.Tags)
	override(&weights.CrossKind, c.Costs.CrossKind)

	e := c.CostExprs
	if e.Insert == "" && e.Delete == "" && e.Rename == "" {
		return weights, nil
	}
	expr, err := editdist.NewExprCosts(e.Insert, e.Delete, e.Rename)
	if err != nil {
		return nil, err
	}
	expr.Fallback = weights

	return expr, nil
}

// editOptions builds the engine options.
func (c *Config) editOptions(costs editdist.CostPolicy) *editdist.Options {
	o := editdist.DefaultOptions()
	o.Costs = costs
	if c.MaxTreeSize > 0 {
		o.MaxTreeSize = c.MaxTreeSize
	}

	return &o
}

// generateOptions builds the recombination options for one pair task.
func (c *Config) generateOptions(seed int64, prov recombine.Provenance) *recombine.Options {
	o := recombine.DefaultOptions()
	o.Seed = seed
	if len(c.Fractions) > 0 {
		o.Fractions = append([]float64(nil), c.Fractions...)
	}
	o.Trials = c.Versions
	if o.Trials < 1 {
		o.Trials = 1
	}
	o.Priority = nil
	if c.Priority.EagerCoreInserts || c.Priority.LazyStructureDeletes {
		o.Priority = &recombine.PriorityPolicy{
			EagerCoreInserts:     c.Priority.EagerCoreInserts,
			LazyStructureDeletes: c.Priority.LazyStructureDeletes,
		}
	}
	o.Provenance = prov

	return &o
}

// noveltyOptions builds the scorer options.
func (c *Config) noveltyOptions() *novelty.Options {
	o := novelty.DefaultOptions()
	if len(c.Novelty.Weights) > 0 {
		o.Weights = make(novelty.Weights, len(c.Novelty.Weights))
		for tag, w := range c.Novelty.Weights {
			o.Weights[recipetree.Tag(tag)] = w
		}
	}
	if c.Novelty.TopK > 0 {
		o.TopK = c.Novelty.TopK
	}
	if c.Novelty.MinOccurrences > 0 {
		o.MinOccurrences = c.Novelty.MinOccurrences
	}

	return &o
}
