// Package grammar holds the tag registries and augmented-grammar data model:
// the bijective name<->index mappings for terminals and nonterminals, the
// production table, and the reserved Start/$ entries that mark a grammar as
// augmented.
package grammar

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lr1table/tag"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Production is an ordered sequence of grammar symbols making up the
// right-hand side of a rule.
type Production []tag.Symbol

// Equal reports whether p and o are the same sequence of symbols.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	if len(p) == 0 {
		return "ε"
	}
	s := ""
	for i, sym := range p {
		if i > 0 {
			s += " "
		}
		s += sym.String()
	}
	return s
}

// Grammar is the tagged, augmented-or-not context-free grammar the rest of
// the core builds a parser table from. The zero value is not usable; build
// one with New and the Add* methods.
type Grammar struct {
	terminalNames    map[string]tag.TerminalIndex
	terminalByIndex  map[tag.TerminalIndex]string
	nonTermNames     map[string]tag.NonterminalIndex
	nonTermByIndex   map[tag.NonterminalIndex]string
	productions      map[tag.ProductionRuleIndex]Production
	prodLHS          map[tag.ProductionRuleIndex]tag.NonterminalIndex
	prodsByNonTerm   map[tag.NonterminalIndex]*treeset.Set // of int(tag.ProductionRuleIndex)
	nextTerminal     tag.TerminalIndex
	nextNonTerminal  tag.NonterminalIndex
	nextProductionID tag.ProductionRuleIndex

	start tag.NonterminalIndex
	hasStart bool

	// augmented-grammar reserved entries; only valid when augmented is true.
	augmented   bool
	augStart    tag.NonterminalIndex
	eof         tag.TerminalIndex
	augProdRule tag.ProductionRuleIndex
}

// New returns an empty, unaugmented grammar ready to have terminals,
// nonterminals, and productions added to it.
func New() *Grammar {
	return &Grammar{
		terminalNames:   map[string]tag.TerminalIndex{},
		terminalByIndex: map[tag.TerminalIndex]string{},
		nonTermNames:    map[string]tag.NonterminalIndex{},
		nonTermByIndex:  map[tag.NonterminalIndex]string{},
		productions:     map[tag.ProductionRuleIndex]Production{},
		prodLHS:         map[tag.ProductionRuleIndex]tag.NonterminalIndex{},
		prodsByNonTerm:  map[tag.NonterminalIndex]*treeset.Set{},
	}
}

// AddTerminal interns name and returns its TerminalIndex, assigning a new
// dense index the first time a given name is seen.
func (g *Grammar) AddTerminal(name string) tag.TerminalIndex {
	if idx, ok := g.terminalNames[name]; ok {
		return idx
	}
	idx := g.nextTerminal
	g.nextTerminal++
	g.terminalNames[name] = idx
	g.terminalByIndex[idx] = name
	return idx
}

// AddNonterminal interns name and returns its NonterminalIndex, assigning a
// new dense index the first time a given name is seen.
func (g *Grammar) AddNonterminal(name string) tag.NonterminalIndex {
	if idx, ok := g.nonTermNames[name]; ok {
		return idx
	}
	idx := g.nextNonTerminal
	g.nextNonTerminal++
	g.nonTermNames[name] = idx
	g.nonTermByIndex[idx] = name
	g.prodsByNonTerm[idx] = treeset.NewWith(utils.IntComparator)
	return idx
}

// SetStartSymbol designates n as the grammar's (unaugmented) start
// nonterminal.
func (g *Grammar) SetStartSymbol(n tag.NonterminalIndex) {
	g.start = n
	g.hasStart = true
}

// StartSymbol returns the grammar's start nonterminal.
func (g *Grammar) StartSymbol() tag.NonterminalIndex {
	return g.start
}

// AddProduction adds a production lhs -> rhs and returns its
// ProductionRuleIndex.
func (g *Grammar) AddProduction(lhs tag.NonterminalIndex, rhs Production) tag.ProductionRuleIndex {
	idx := g.nextProductionID
	g.nextProductionID++
	g.productions[idx] = rhs
	g.prodLHS[idx] = lhs
	set, ok := g.prodsByNonTerm[lhs]
	if !ok {
		set = treeset.NewWith(utils.IntComparator)
		g.prodsByNonTerm[lhs] = set
	}
	set.Add(int(idx))
	return idx
}

// Production returns the right-hand side of rule r.
func (g *Grammar) Production(r tag.ProductionRuleIndex) Production {
	p, ok := g.productions[r]
	if !ok {
		panic(fmt.Sprintf("grammar: no production with index %d", r))
	}
	return p
}

// LHS returns the nonterminal that rule r reduces to.
func (g *Grammar) LHS(r tag.ProductionRuleIndex) tag.NonterminalIndex {
	lhs, ok := g.prodLHS[r]
	if !ok {
		panic(fmt.Sprintf("grammar: no production with index %d", r))
	}
	return lhs
}

// ProductionsOf returns, in ascending ProductionRuleIndex order, every
// production whose left-hand side is n.
func (g *Grammar) ProductionsOf(n tag.NonterminalIndex) []tag.ProductionRuleIndex {
	set, ok := g.prodsByNonTerm[n]
	if !ok {
		return nil
	}
	vals := set.Values()
	out := make([]tag.ProductionRuleIndex, len(vals))
	for i, v := range vals {
		out[i] = tag.ProductionRuleIndex(v.(int))
	}
	return out
}

// Terminals returns every terminal index in ascending order.
func (g *Grammar) Terminals() []tag.TerminalIndex {
	out := make([]tag.TerminalIndex, 0, len(g.terminalByIndex))
	for idx := range g.terminalByIndex {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Nonterminals returns every nonterminal index in ascending order.
func (g *Grammar) Nonterminals() []tag.NonterminalIndex {
	out := make([]tag.NonterminalIndex, 0, len(g.nonTermByIndex))
	for idx := range g.nonTermByIndex {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TerminalName returns the name a terminal was added under, for
// diagnostics.
func (g *Grammar) TerminalName(t tag.TerminalIndex) string {
	return g.terminalByIndex[t]
}

// NonterminalName returns the name a nonterminal was added under, for
// diagnostics.
func (g *Grammar) NonterminalName(n tag.NonterminalIndex) string {
	return g.nonTermByIndex[n]
}

// IsAugmented reports whether Augment has already produced the reserved
// Start and $ entries on this grammar.
func (g *Grammar) IsAugmented() bool {
	return g.augmented
}

// AugmentedStart returns the reserved synthetic start nonterminal.
// Precondition: g.IsAugmented().
func (g *Grammar) AugmentedStart() tag.NonterminalIndex {
	if !g.augmented {
		panic("grammar: AugmentedStart called on an unaugmented grammar")
	}
	return g.augStart
}

// EOF returns the reserved end-of-file terminal. Precondition:
// g.IsAugmented().
func (g *Grammar) EOF() tag.TerminalIndex {
	if !g.augmented {
		panic("grammar: EOF called on an unaugmented grammar")
	}
	return g.eof
}

// AugmentedProduction returns the ProductionRuleIndex of the synthetic
// Start -> S $ production. Precondition: g.IsAugmented().
func (g *Grammar) AugmentedProduction() tag.ProductionRuleIndex {
	if !g.augmented {
		panic("grammar: AugmentedProduction called on an unaugmented grammar")
	}
	return g.augProdRule
}

// Augment returns a grammar extended with the synthetic Start nonterminal
// and $ terminal and the unique production Start -> S $, where S is g's
// current start symbol. Calling Augment on an already-augmented grammar is
// a no-op that returns g unchanged, so construction pipelines are free to
// call it more than once.
func (g *Grammar) Augment() (*Grammar, error) {
	if g.augmented {
		return g, nil
	}
	if !g.hasStart {
		return nil, fmt.Errorf("%w: grammar has no start symbol set", ErrMissingAugmentation)
	}

	aug := g.clone()
	aug.eof = aug.AddTerminal("$")
	aug.augStart = aug.AddNonterminal("Start'")
	aug.augProdRule = aug.AddProduction(aug.augStart, Production{
		tag.Nonterminal(g.start),
		tag.Terminal(aug.eof),
	})
	aug.augmented = true
	return aug, nil
}

func (g *Grammar) clone() *Grammar {
	cp := New()
	for name, idx := range g.terminalNames {
		cp.terminalNames[name] = idx
		cp.terminalByIndex[idx] = name
	}
	cp.nextTerminal = g.nextTerminal
	for name, idx := range g.nonTermNames {
		cp.nonTermNames[name] = idx
		cp.nonTermByIndex[idx] = name
	}
	cp.nextNonTerminal = g.nextNonTerminal
	for r, p := range g.productions {
		rhsCopy := make(Production, len(p))
		copy(rhsCopy, p)
		cp.productions[r] = rhsCopy
		cp.prodLHS[r] = g.prodLHS[r]
	}
	cp.nextProductionID = g.nextProductionID
	for n, set := range g.prodsByNonTerm {
		newSet := treeset.NewWith(utils.IntComparator)
		for _, v := range set.Values() {
			newSet.Add(v)
		}
		cp.prodsByNonTerm[n] = newSet
	}
	cp.start = g.start
	cp.hasStart = g.hasStart
	return cp
}

// Validate checks the grammar-level preconditions the rest of the package
// relies on: every production's left-hand side has a registered
// nonterminal, every symbol referenced exists, and (if checkAugmented) the
// grammar carries the reserved Start/$ entries.
func (g *Grammar) Validate(checkAugmented bool) error {
	if len(g.productions) == 0 {
		return fmt.Errorf("grammar has no productions")
	}
	if len(g.terminalByIndex) == 0 {
		return fmt.Errorf("grammar has no terminals")
	}
	for r, rhs := range g.productions {
		lhs, ok := g.prodLHS[r]
		if !ok {
			return fmt.Errorf("production %d has no left-hand side", r)
		}
		if _, ok := g.nonTermByIndex[lhs]; !ok {
			return fmt.Errorf("production %d has unregistered left-hand side %d", r, lhs)
		}
		for _, sym := range rhs {
			if sym.IsTerminal() {
				if _, ok := g.terminalByIndex[sym.TerminalIndex()]; !ok {
					return fmt.Errorf("production %d references unknown terminal %s", r, sym)
				}
			} else {
				if _, ok := g.nonTermByIndex[sym.NonterminalIndex()]; !ok {
					return fmt.Errorf("production %d references unknown nonterminal %s", r, sym)
				}
			}
		}
	}
	if checkAugmented && !g.augmented {
		return fmt.Errorf("%w", ErrMissingAugmentation)
	}
	return nil
}
