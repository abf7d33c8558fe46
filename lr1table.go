// Package lr1table constructs the canonical LR(1) automaton and parser
// table for a tagged, augmented context-free grammar.
//
// It is the facade over the module's subsystems -- tag, grammar, predict,
// item, closure, lrtrans, automaton. Most callers only need this package
// and grammar (to build the input) plus automaton (to read the output);
// the rest are exported for callers who want to drive the closure/goto
// machinery directly, e.g. to implement a different canonical construction
// variant.
package lr1table

import (
	"fmt"

	"github.com/dekarrin/lr1table/automaton"
	"github.com/dekarrin/lr1table/grammar"
	"github.com/dekarrin/lr1table/predict"
)

// BuildTable constructs the canonical LR(1) ACTION/GOTO table for g. g must
// already be augmented via (*grammar.Grammar).Augment; BuildTable itself
// computes the predictive sets (FIRST/nullable) needed by the closure
// engine, since those are cheap to derive and callers building a single
// table have no reason to wire them in by hand. Use predict.Compute and
// automaton.BuildTable directly if you need to reuse predictive sets across
// multiple builds of variants of the same grammar.
func BuildTable(g *grammar.Grammar) (*automaton.Table, error) {
	if !g.IsAugmented() {
		return nil, fmt.Errorf("lr1table: %w", grammar.ErrMissingAugmentation)
	}

	sets := predict.Compute(g)
	return automaton.BuildTable(g, sets)
}
