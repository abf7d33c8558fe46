package automaton

import (
	"fmt"

	"github.com/dekarrin/lr1table/item"
	"github.com/dekarrin/lr1table/tag"
	"github.com/emirpasic/gods/sets/treeset"
)

// CheckReachability verifies that every state other than the initial state
// appears as the target of some Shift or Goto entry -- a table with an
// unreachable state indicates a bug in construction, not a valid grammar
// quirk.
func (t *Table) CheckReachability() error {
	reached := map[ParserStateId]bool{t.Initial: true}

	for _, entries := range t.action {
		for a := range entries {
			if a.Type == Shift {
				reached[a.State] = true
			}
		}
	}
	for _, dest := range t.gotoT {
		reached[dest] = true
	}

	for _, sid := range t.States() {
		if !reached[sid] {
			return fmt.Errorf("state %d is unreachable: not the target of any shift or goto entry", sid)
		}
	}
	return nil
}

// CheckAcceptUniqueness verifies that Accept appears only at (sid, eof)
// where sid contains the item [Start -> S . $, $].
func (t *Table) CheckAcceptUniqueness() error {
	eof := t.g.EOF()
	startRule := t.g.AugmentedProduction()

	for key, entries := range t.action {
		for a := range entries {
			if a.Type != Accept {
				continue
			}
			if key.terminal != eof {
				return fmt.Errorf("state %d: accept recorded on non-$ terminal %d", key.state, key.terminal)
			}
			if !stateHasAcceptItem(t.states[key.state], startRule, eof) {
				return fmt.Errorf("state %d: accept recorded but item set contains no [Start -> S . $, $] item", key.state)
			}
		}
	}
	return nil
}

func stateHasAcceptItem(items *treeset.Set, startRule tag.ProductionRuleIndex, eof tag.TerminalIndex) bool {
	for _, v := range items.Values() {
		i := v.(item.Item)
		if i.Rule == startRule && i.Position == 1 && i.Lookahead == eof {
			return true
		}
	}
	return false
}
