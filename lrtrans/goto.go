// Package lrtrans implements the LR(1) goto engine: the transition
// function from (parser state, grammar symbol) to the successor state.
//
// Kept as its own package, distinct from closure, since it has its own
// empty-state contract and is useful on its own to callers driving a
// different canonical construction variant over the same item sets.
package lrtrans

import (
	"github.com/dekarrin/lr1table/closure"
	"github.com/dekarrin/lr1table/grammar"
	"github.com/dekarrin/lr1table/item"
	"github.com/dekarrin/lr1table/predict"
	"github.com/dekarrin/lr1table/tag"
	"github.com/emirpasic/gods/sets/treeset"
)

// Goto computes the successor state reached from state on symbol: the
// closure of { advance(i) | i in state, current_symbol(i) == symbol }.
//
// If no item in state has symbol as its current symbol, the returned set
// is empty (Size() == 0); callers must treat that as "no transition" and
// must not register it as a state.
func Goto(state *treeset.Set, symbol tag.Symbol, g *grammar.Grammar, sets *predict.Sets) *treeset.Set {
	advanced := treeset.NewWith(item.Comparator)

	for _, v := range state.Values() {
		i := v.(item.Item)
		sym, ok := i.CurrentSymbol(g)
		if !ok || !sym.Equal(symbol) {
			continue
		}
		advanced.Add(i.Advance(g))
	}

	if advanced.Empty() {
		return advanced
	}

	return closure.Close(advanced, g, sets)
}
