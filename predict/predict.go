// Package predict computes the predictive sets the rest of the table
// builder treats as an immutable oracle: per-nonterminal FIRST sets and
// nullable flags over a tagged grammar.
package predict

import (
	"sort"

	"github.com/dekarrin/lr1table/grammar"
	"github.com/dekarrin/lr1table/tag"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Sets is the immutable FIRST/nullable oracle computed for one grammar. It
// is never mutated after Compute returns it; the closure engine and item
// algebra only ever read from it.
type Sets struct {
	first    map[tag.NonterminalIndex]*treeset.Set // of int(tag.TerminalIndex)
	nullable map[tag.NonterminalIndex]bool
}

// Compute runs the standard fixed-point FIRST-set / nullable computation
// over g's productions. g need not be augmented; Compute works the same
// whether or not the reserved Start/$ entries are present, since they
// behave like any other nonterminal/terminal once added.
func Compute(g *grammar.Grammar) *Sets {
	s := &Sets{
		first:    map[tag.NonterminalIndex]*treeset.Set{},
		nullable: map[tag.NonterminalIndex]bool{},
	}

	nonTerms := g.Nonterminals()
	for _, n := range nonTerms {
		s.first[n] = treeset.NewWith(utils.IntComparator)
		s.nullable[n] = false
	}

	// Classic worklist-free fixed point: a production n -> X1 X2 ... Xk
	// contributes FIRST(X1) to FIRST(n), and if X1 is nullable also
	// FIRST(X2), and so on; n is nullable iff every Xi is nullable (or the
	// production is empty). Iterate until neither any FIRST set nor any
	// nullable flag grows.
	changed := true
	for changed {
		changed = false
		for _, n := range nonTerms {
			for _, r := range g.ProductionsOf(n) {
				rhs := g.Production(r)

				if len(rhs) == 0 {
					if !s.nullable[n] {
						s.nullable[n] = true
						changed = true
					}
					continue
				}

				restNullable := true
				for _, sym := range rhs {
					if !restNullable {
						break
					}

					if sym.IsTerminal() {
						before := s.first[n].Size()
						s.first[n].Add(int(sym.TerminalIndex()))
						if s.first[n].Size() != before {
							changed = true
						}
						restNullable = false
						continue
					}

					m := sym.NonterminalIndex()
					before := s.first[n].Size()
					for _, v := range s.first[m].Values() {
						s.first[n].Add(v)
					}
					if s.first[n].Size() != before {
						changed = true
					}
					if !s.nullable[m] {
						restNullable = false
					}
				}

				if restNullable && !s.nullable[n] {
					s.nullable[n] = true
					changed = true
				}
			}
		}
	}

	return s
}

// First returns the FIRST set of nonterminal n, in ascending terminal-index
// order.
func (s *Sets) First(n tag.NonterminalIndex) []tag.TerminalIndex {
	set, ok := s.first[n]
	if !ok {
		return nil
	}
	vals := set.Values()
	out := make([]tag.TerminalIndex, len(vals))
	for i, v := range vals {
		out[i] = tag.TerminalIndex(v.(int))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Nullable reports whether nonterminal n can derive the empty string.
func (s *Sets) Nullable(n tag.NonterminalIndex) bool {
	return s.nullable[n]
}
