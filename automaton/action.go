package automaton

import (
	"fmt"

	"github.com/dekarrin/lr1table/tag"
)

// ParserStateId identifies a parser state once it has been interned by the
// builder. Ids are assigned in discovery order starting at 0 (the initial
// state) and never change once assigned.
type ParserStateId uint32

// ActionType distinguishes the three directives an ACTION entry can carry.
// There is no Error case: an absent ACTION-table key already means "no
// action", so the table never needs to store an explicit error sentinel.
type ActionType int

const (
	// Shift moves to State on the matched terminal.
	Shift ActionType = iota
	// Reduce applies Production, replacing its right-hand side on the
	// stack with its left-hand side.
	Reduce
	// Accept terminates parsing successfully.
	Accept
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "unknown"
	}
}

// ActionEntry is one ACTION-table directive. Which fields are meaningful
// depends on Type: State for Shift, Production for Reduce, neither for
// Accept.
type ActionEntry struct {
	Type       ActionType
	State      ParserStateId
	Production tag.ProductionRuleIndex
}

func (a ActionEntry) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %d", a.Production)
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

type actionKey struct {
	state    ParserStateId
	terminal tag.TerminalIndex
}

type gotoKey struct {
	state       ParserStateId
	nonterminal tag.NonterminalIndex
}
