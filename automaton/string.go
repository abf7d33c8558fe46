package automaton

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// String pretty-prints the ACTION/GOTO table, one row per state, with a
// column per terminal (ACTION) and nonterminal (GOTO). This is a diagnostic
// convenience; nothing in table construction depends on it.
func (t *Table) String() string {
	terminals := t.g.Terminals()
	nonTerminals := t.g.Nonterminals()

	headers := []string{"S", "|"}
	for _, term := range terminals {
		headers = append(headers, fmt.Sprintf("A:%s", t.g.TerminalName(term)))
	}
	headers = append(headers, "|")
	for _, n := range nonTerminals {
		headers = append(headers, fmt.Sprintf("G:%s", t.g.NonterminalName(n)))
	}

	data := [][]string{headers}

	for _, sid := range t.States() {
		row := []string{fmt.Sprintf("%d", sid), "|"}

		for _, term := range terminals {
			entries := t.Action(sid, term)
			cell := ""
			for i, a := range entries {
				if i > 0 {
					cell += " / "
				}
				cell += actionCell(a)
			}
			row = append(row, cell)
		}

		row = append(row, "|")

		for _, n := range nonTerminals {
			cell := ""
			if dest, ok := t.Goto(sid, n); ok {
				cell = fmt.Sprintf("%d", dest)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func actionCell(a ActionEntry) string {
	switch a.Type {
	case Accept:
		return "acc"
	case Reduce:
		return fmt.Sprintf("r%d", a.Production)
	case Shift:
		return fmt.Sprintf("s%d", a.State)
	default:
		return ""
	}
}
