package editdist

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// ExprCosts is a CostPolicy whose weights come from CEL (Common Expression
// Language) expressions, so cost tuning can live in configuration files
// instead of code.
//
// Expression contract:
//   - insert/delete expressions see a `node` variable;
//   - the rename expression sees `from` and `to`;
//   - each node value is a map {label, kind, abstr, tags, root};
//   - expressions must evaluate to a number (int or double).
//
// Examples:
//   - insert: `node.kind == "action" ? 80.0 : 100.0`
//   - rename: `from.abstr == to.abstr ? 0.0 : 100000.0`
//
// Expressions are compiled once at construction. An empty expression, or
// an evaluation failure at runtime, falls back to the Fallback policy for
// that operation; the policy itself stays deterministic either way.
type ExprCosts struct {
	// Fallback prices operations whose expression is empty or fails.
	Fallback *Costs

	insert cel.Program
	delete cel.Program
	rename cel.Program
}

// NewExprCosts compiles the three cost expressions. Empty strings are
// allowed and leave the corresponding operation on the fallback policy.
func NewExprCosts(insertExpr, deleteExpr, renameExpr string) (*ExprCosts, error) {
	env, err := cel.NewEnv(
		cel.Variable("node", cel.DynType),
		cel.Variable("from", cel.DynType),
		cel.Variable("to", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("editdist: cel env: %w", err)
	}

	e := &ExprCosts{Fallback: DefaultCosts()}
	compile := func(expr string) (cel.Program, error) {
		if expr == "" {
			return nil, nil
		}
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("editdist: compile %q: %w", expr, issues.Err())
		}
		return env.Program(ast)
	}

	if e.insert, err = compile(insertExpr); err != nil {
		return nil, err
	}
	if e.delete, err = compile(deleteExpr); err != nil {
		return nil, err
	}
	if e.rename, err = compile(renameExpr); err != nil {
		return nil, err
	}

	return e, nil
}

// InsertCost implements CostPolicy.
func (e *ExprCosts) InsertCost(n *recipetree.Node) float64 {
	if cost, ok := e.eval(e.insert, map[string]any{"node": nodeInput(n)}); ok {
		return cost
	}
	return e.Fallback.InsertCost(n)
}

// DeleteCost implements CostPolicy.
func (e *ExprCosts) DeleteCost(n *recipetree.Node) float64 {
	if cost, ok := e.eval(e.delete, map[string]any{"node": nodeInput(n)}); ok {
		return cost
	}
	return e.Fallback.DeleteCost(n)
}

// RenameCost implements CostPolicy.
func (e *ExprCosts) RenameCost(from, to *recipetree.Node) float64 {
	input := map[string]any{"from": nodeInput(from), "to": nodeInput(to)}
	if cost, ok := e.eval(e.rename, input); ok {
		return cost
	}
	return e.Fallback.RenameCost(from, to)
}

// eval runs a compiled program and coerces the result to a non-negative
// float64. ok is false when prg is nil or evaluation fails.
func (e *ExprCosts) eval(prg cel.Program, input map[string]any) (float64, bool) {
	if prg == nil {
		return 0, false
	}
	out, _, err := prg.Eval(input)
	if err != nil {
		return 0, false
	}

	var cost float64
	switch v := out.Value().(type) {
	case float64:
		cost = v
	case int64:
		cost = float64(v)
	case uint64:
		cost = float64(v)
	default:
		return 0, false
	}
	if cost < 0 {
		cost = 0
	}

	return cost, true
}

// nodeInput exposes a node to CEL as a plain map.
func nodeInput(n *recipetree.Node) map[string]any {
	tags := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, string(t))
	}
	return map[string]any{
		"label": n.Label,
		"kind":  n.Kind.String(),
		"abstr": n.Abstraction,
		"tags":  tags,
		"root":  n.Root,
	}
}
