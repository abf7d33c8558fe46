// Package tag provides the dense integer index types and the symbol
// tagged-variant that the rest of the LR(1) table generator operates over.
//
// Everything in the core is indexed by these types rather than by name;
// names live in the grammar package's bijections and are only consulted for
// diagnostics.
package tag

import "fmt"

// TerminalIndex is a dense, non-negative index assigned to a terminal symbol
// by a tag registry.
type TerminalIndex int

// NonterminalIndex is a dense, non-negative index assigned to a nonterminal
// symbol by a tag registry.
type NonterminalIndex int

// ProductionRuleIndex identifies a single production rule.
type ProductionRuleIndex int

// Kind distinguishes the two cases of Symbol.
type Kind int

const (
	// KindTerminal marks a Symbol carrying a TerminalIndex.
	KindTerminal Kind = iota
	// KindNonterminal marks a Symbol carrying a NonterminalIndex.
	KindNonterminal
)

// Symbol is the tagged-variant grammar symbol: either a terminal or a
// nonterminal, identified by its dense index. The zero value is
// Terminal(0); callers that need to distinguish "no symbol" from
// Terminal(0) should use an Option type at the call site (see
// item.CurrentSymbol, which returns an (Symbol, bool) pair instead).
type Symbol struct {
	kind        Kind
	terminal    TerminalIndex
	nonterminal NonterminalIndex
}

// Terminal constructs a Symbol wrapping a TerminalIndex.
func Terminal(t TerminalIndex) Symbol {
	return Symbol{kind: KindTerminal, terminal: t}
}

// Nonterminal constructs a Symbol wrapping a NonterminalIndex.
func Nonterminal(n NonterminalIndex) Symbol {
	return Symbol{kind: KindNonterminal, nonterminal: n}
}

// IsTerminal reports whether s is a Terminal(...) symbol.
func (s Symbol) IsTerminal() bool {
	return s.kind == KindTerminal
}

// TerminalIndex returns the wrapped TerminalIndex. Precondition: s.IsTerminal().
func (s Symbol) TerminalIndex() TerminalIndex {
	if s.kind != KindTerminal {
		panic("tag: TerminalIndex() called on a Nonterminal Symbol")
	}
	return s.terminal
}

// NonterminalIndex returns the wrapped NonterminalIndex. Precondition:
// !s.IsTerminal().
func (s Symbol) NonterminalIndex() NonterminalIndex {
	if s.kind == KindTerminal {
		panic("tag: NonterminalIndex() called on a Terminal Symbol")
	}
	return s.nonterminal
}

// Equal reports whether s and o refer to the same tagged symbol.
func (s Symbol) Equal(o Symbol) bool {
	if s.kind != o.kind {
		return false
	}
	if s.kind == KindTerminal {
		return s.terminal == o.terminal
	}
	return s.nonterminal == o.nonterminal
}

// Compare gives a total, deterministic order over symbols: all terminals
// (ordered by index) sort before all nonterminals (ordered by index). It
// exists so item sets and diagnostics can iterate symbols in a stable
// order.
func (s Symbol) Compare(o Symbol) int {
	if s.kind != o.kind {
		if s.kind == KindTerminal {
			return -1
		}
		return 1
	}
	if s.kind == KindTerminal {
		return int(s.terminal) - int(o.terminal)
	}
	return int(s.nonterminal) - int(o.nonterminal)
}

func (s Symbol) String() string {
	if s.kind == KindTerminal {
		return fmt.Sprintf("T%d", s.terminal)
	}
	return fmt.Sprintf("N%d", s.nonterminal)
}
