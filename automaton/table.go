// Package automaton implements the canonical LR(1) automaton builder: it
// seeds the initial state from the augmented start production, discovers
// successor states by driving the goto engine over every grammar symbol,
// assigns stable state ids, and populates the ACTION/GOTO table. It fills
// in the same entries as Algorithm 4.56, "Construction of canonical-LR
// parsing tables", from the purple dragon book, but instead of building the
// whole item-set collection first and filling the table in a second pass,
// it discovers states and fills in ACTION/GOTO entries together from a
// single worklist, one pass, so that state ids come out in a fixed,
// repeatable order.
package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lr1table/closure"
	"github.com/dekarrin/lr1table/grammar"
	"github.com/dekarrin/lr1table/item"
	"github.com/dekarrin/lr1table/lrtrans"
	"github.com/dekarrin/lr1table/predict"
	"github.com/dekarrin/lr1table/tag"
	"github.com/emirpasic/gods/sets/treeset"
)

// Table is the constructed LR(1) parser table: the ACTION and GOTO maps,
// plus the state bijection retained for diagnostics and conflict
// reporting.
type Table struct {
	StateCount uint32
	Initial    ParserStateId

	action map[actionKey]map[ActionEntry]struct{}
	gotoT  map[gotoKey]ParserStateId
	states map[ParserStateId]*treeset.Set // of item.Item

	g    *grammar.Grammar
	sets *predict.Sets
}

// Action returns every ACTION entry recorded at (state, terminal), in a
// deterministic order (Shift/Reduce/Accept, then ascending payload). More
// than one entry means a shift/reduce or reduce/reduce conflict; the table
// records all of them rather than resolving or rejecting one.
func (t *Table) Action(state ParserStateId, terminal tag.TerminalIndex) []ActionEntry {
	set, ok := t.action[actionKey{state, terminal}]
	if !ok {
		return nil
	}
	out := make([]ActionEntry, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Production < out[j].Production
	})
	return out
}

// Goto returns the successor state recorded at (state, nonterminal), and
// whether one exists.
func (t *Table) Goto(state ParserStateId, nonterminal tag.NonterminalIndex) (ParserStateId, bool) {
	s, ok := t.gotoT[gotoKey{state, nonterminal}]
	return s, ok
}

// StateItems returns the LR(1) item set belonging to state id, as a
// treeset.Set of item.Item, ordered by item.Comparator.
func (t *Table) StateItems(id ParserStateId) *treeset.Set {
	return t.states[id]
}

// States returns every assigned state id, in ascending order.
func (t *Table) States() []ParserStateId {
	out := make([]ParserStateId, 0, len(t.states))
	for id := range t.states {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// builder is the table-generation state held for the duration of one
// construction: the state bijection, the partial ACTION/GOTO maps, and the
// monotonically increasing id counter. It is created at BuildTable's entry
// and discarded at return; nothing it holds escapes except through the
// finished Table.
type builder struct {
	g    *grammar.Grammar
	sets *predict.Sets

	byKey  map[string]ParserStateId
	states map[ParserStateId]*treeset.Set
	next   ParserStateId

	action map[actionKey]map[ActionEntry]struct{}
	gotoT  map[gotoKey]ParserStateId
}

// intern looks up state by item-set equality; if it has already been
// assigned an id, that id is returned unchanged. Otherwise a new id is
// allocated from the monotonic counter, the state is recorded in the
// bijection, and (true, newId) is returned so the caller can enqueue it for
// exploration.
func (b *builder) intern(state *treeset.Set) (isNew bool, id ParserStateId) {
	key := stateKey(state)
	if id, ok := b.byKey[key]; ok {
		return false, id
	}
	id = b.next
	b.next++
	b.byKey[key] = id
	b.states[id] = state
	return true, id
}

func stateKey(state *treeset.Set) string {
	s := ""
	for _, v := range state.Values() {
		s += v.(item.Item).Key() + ";"
	}
	return s
}

// BuildTable constructs the canonical LR(1) parser table for g, which must
// already be augmented (grammar.Grammar.Augment) -- if it isn't,
// grammar.ErrMissingAugmentation is returned, wrapped.
func BuildTable(g *grammar.Grammar, sets *predict.Sets) (*Table, error) {
	if err := g.Validate(true); err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}

	b := &builder{
		g:      g,
		sets:   sets,
		byKey:  map[string]ParserStateId{},
		states: map[ParserStateId]*treeset.Set{},
		action: map[actionKey]map[ActionEntry]struct{}{},
		gotoT:  map[gotoKey]ParserStateId{},
	}

	eof := g.EOF()
	startRule := g.AugmentedProduction()

	kernel := treeset.NewWith(item.Comparator)
	kernel.Add(item.New(startRule, 0, eof))
	s0 := closure.Close(kernel, g, sets)

	_, initialID := b.intern(s0)
	if initialID != 0 {
		// The very first call to intern on a freshly constructed builder
		// always allocates id 0; this can only fail to hold if intern's
		// counter was seeded wrong.
		panic("automaton: initial state did not receive ParserStateId(0)")
	}

	worklist := []ParserStateId{initialID}

	for len(worklist) > 0 {
		var next []ParserStateId

		for _, sid := range worklist {
			items := b.states[sid]

			for _, v := range items.Values() {
				i := v.(item.Item)

				sym, ok := i.CurrentSymbol(g)
				if !ok {
					// End of production: reduce by i.Rule on i.Lookahead.
					// The augmented item [Start -> S $ ., $] never reaches
					// this branch: the Accept case below intercepts the
					// dot-before-$ item and never computes a successor
					// into the dot-after-$ state, so no item with
					// i.Rule == startRule is ever at end-of-production
					// here.
					b.recordAction(sid, i.Lookahead, ActionEntry{Type: Reduce, Production: i.Rule})
					continue
				}

				if sym.IsTerminal() {
					t := sym.TerminalIndex()
					if t == eof {
						if i.Rule != startRule {
							panic("automaton: $ encountered outside the augmented start production; grammar violates the single-eof-position invariant")
						}
						b.recordAction(sid, eof, ActionEntry{Type: Accept})
						continue
					}

					successor := lrtrans.Goto(items, sym, g, sets)
					isNew, tid := b.intern(successor)
					b.recordAction(sid, t, ActionEntry{Type: Shift, State: tid})
					if isNew {
						next = append(next, tid)
					}
					continue
				}

				n := sym.NonterminalIndex()
				successor := lrtrans.Goto(items, sym, g, sets)
				isNew, nid := b.intern(successor)
				b.gotoT[gotoKey{sid, n}] = nid
				if isNew {
					next = append(next, nid)
				}
			}
		}

		worklist = next
	}

	return &Table{
		StateCount: uint32(len(b.states)),
		Initial:    initialID,
		action:     b.action,
		gotoT:      b.gotoT,
		states:     b.states,
		g:          g,
		sets:       sets,
	}, nil
}

func (b *builder) recordAction(state ParserStateId, terminal tag.TerminalIndex, entry ActionEntry) {
	key := actionKey{state, terminal}
	set, ok := b.action[key]
	if !ok {
		set = map[ActionEntry]struct{}{}
		b.action[key] = set
	}
	set[entry] = struct{}{}
}
