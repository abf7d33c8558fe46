// Package closure implements the LR(1) closure engine: the worklist-driven
// least fixed point that expands a kernel item set into a full parser
// state.
package closure

import (
	"github.com/dekarrin/lr1table/grammar"
	"github.com/dekarrin/lr1table/item"
	"github.com/dekarrin/lr1table/predict"
	"github.com/dekarrin/lr1table/tag"
	"github.com/emirpasic/gods/sets/treeset"
)

// Close computes the closure of the given kernel item set: the least
// fixed point under LR(1) expansion. The returned treeset.Set holds
// item.Item values ordered by item.Comparator, so iterating its Values()
// always visits items in ascending (rule, position, lookahead) order.
func Close(kernel *treeset.Set, g *grammar.Grammar, sets *predict.Sets) *treeset.Set {
	result := treeset.NewWith(item.Comparator)

	worklist := make([]item.Item, 0, kernel.Size())
	for _, v := range kernel.Values() {
		worklist = append(worklist, v.(item.Item))
	}

	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]

		if result.Contains(i) {
			continue
		}
		result.Add(i)

		sym, ok := i.CurrentSymbol(g)
		if !ok || sym.IsTerminal() {
			continue
		}

		b := sym.NonterminalIndex()
		production := g.Production(i.Rule)

		first, err := item.FirstOfString(production, i.Position+1, i.Lookahead, sets)
		if err != nil {
			// i.Position+1 is always in [0, len(production)] here since
			// i.Position < len(production) (CurrentSymbol returned ok).
			panic("closure: unexpected invalid FirstOfString call: " + err.Error())
		}

		for _, r := range g.ProductionsOf(b) {
			for _, v := range first.Values() {
				lookahead := tag.TerminalIndex(v.(int))
				newItem := item.New(r, 0, lookahead)
				if !result.Contains(newItem) {
					worklist = append(worklist, newItem)
				}
			}
		}
	}

	return result
}
