// Package item implements the LR(1) item algebra: the current-symbol probe,
// dot advancement, and the FIRST-of-string walk used by the closure engine.
//
// An item is split into an LR(0) Core (which production, how far the dot
// has advanced) embedded in Item, with the LR(1) lookahead layered on top.
// CurrentSymbol and Advance are methods of Item; they read only the Core
// fields, and Advance carries the lookahead over unchanged.
package item

import (
	"errors"
	"fmt"

	"github.com/dekarrin/lr1table/grammar"
	"github.com/dekarrin/lr1table/predict"
	"github.com/dekarrin/lr1table/tag"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// ErrInvalidArgument is returned (wrapped) when an operation is given a
// precondition-violating argument.
var ErrInvalidArgument = errors.New("invalid argument")

// Core is the LR(0) heart of an item: which production, and how far the
// dot has advanced into it.
type Core struct {
	Rule     tag.ProductionRuleIndex
	Position int
}

// Item is an LR(1) item: a Core plus a one-terminal lookahead.
type Item struct {
	Core
	Lookahead tag.TerminalIndex
}

// New constructs the item (rule, position, lookahead). Closures seed new
// items with position 0.
func New(rule tag.ProductionRuleIndex, position int, lookahead tag.TerminalIndex) Item {
	return Item{Core: Core{Rule: rule, Position: position}, Lookahead: lookahead}
}

// Equal reports whether i and o are the same item: same production, same
// position, same lookahead. Two items differing only in lookahead are
// distinct items.
func (i Item) Equal(o Item) bool {
	return i.Rule == o.Rule && i.Position == o.Position && i.Lookahead == o.Lookahead
}

// Compare gives a total order over items (by rule, then position, then
// lookahead), used to keep item-set iteration deterministic.
func (i Item) Compare(o Item) int {
	if i.Rule != o.Rule {
		return int(i.Rule) - int(o.Rule)
	}
	if i.Position != o.Position {
		return i.Position - o.Position
	}
	return int(i.Lookahead) - int(o.Lookahead)
}

// CurrentSymbol returns the symbol immediately to the right of the dot, and
// true, or the zero Symbol and false when the dot is at the end of the
// production.
func (i Item) CurrentSymbol(g *grammar.Grammar) (tag.Symbol, bool) {
	rhs := g.Production(i.Rule)
	if i.Position >= len(rhs) {
		return tag.Symbol{}, false
	}
	return rhs[i.Position], true
}

// AtEnd reports whether the dot has reached the end of the production,
// i.e. CurrentSymbol would return ok=false.
func (i Item) AtEnd(g *grammar.Grammar) bool {
	_, ok := i.CurrentSymbol(g)
	return !ok
}

// Advance returns a new item with the dot moved one position to the right.
// Precondition: CurrentSymbol(g) must be present; violating it is a
// programming error in the caller (the closure/goto engines only ever
// advance items whose current symbol they've already checked), so it
// panics rather than returning an error.
func (i Item) Advance(g *grammar.Grammar) Item {
	if i.AtEnd(g) {
		panic(fmt.Sprintf("item: Advance called on item already at end of production %d", i.Rule))
	}
	return Item{Core: Core{Rule: i.Rule, Position: i.Position + 1}, Lookahead: i.Lookahead}
}

// Key returns a stable string encoding of the item, independent of any
// grammar, suitable for use as a map key when deduplicating parser states
// by item-set equality rather than by reference.
func (i Item) Key() string {
	return fmt.Sprintf("%d|%d|%d", i.Rule, i.Position, i.Lookahead)
}

// Comparator is a github.com/emirpasic/gods-compatible comparator over
// Item values, used to back the ordered treeset.Set that represents a
// parser state (item set) throughout closure, goto, and automaton
// construction.
func Comparator(a, b interface{}) int {
	return a.(Item).Compare(b.(Item))
}

func (i Item) String(g *grammar.Grammar) string {
	rhs := g.Production(i.Rule)
	s := fmt.Sprintf("[%d ->", g.LHS(i.Rule))
	for pos := 0; pos <= len(rhs); pos++ {
		if pos == i.Position {
			s += " ."
		}
		if pos < len(rhs) {
			s += " " + rhs[pos].String()
		}
	}
	return fmt.Sprintf("%s, %d]", s, i.Lookahead)
}

// FirstOfString computes FIRST(production[startIndex:] . lookahead): the
// set of terminals that can begin the suffix of production starting at
// startIndex, followed by lookahead if that entire suffix is nullable.
//
// Precondition: 0 <= startIndex <= len(production); violating it returns
// ErrInvalidArgument.
func FirstOfString(production grammar.Production, startIndex int, lookahead tag.TerminalIndex, sets *predict.Sets) (*treeset.Set, error) {
	if startIndex < 0 || startIndex > len(production) {
		return nil, fmt.Errorf("%w: start index %d out of range [0, %d]", ErrInvalidArgument, startIndex, len(production))
	}

	result := treeset.NewWith(utils.IntComparator)

	for i := startIndex; i <= len(production); i++ {
		if i == len(production) {
			result.Add(int(lookahead))
			return result, nil
		}

		sym := production[i]
		if sym.IsTerminal() {
			result.Add(int(sym.TerminalIndex()))
			return result, nil
		}

		n := sym.NonterminalIndex()
		for _, t := range sets.First(n) {
			result.Add(int(t))
		}
		if !sets.Nullable(n) {
			return result, nil
		}
		// n is nullable: continue the walk with i+1.
	}

	// unreachable: the i == len(production) branch above always returns.
	return result, nil
}
