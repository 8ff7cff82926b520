package matcher

import (
	"slices"

	"github.com/l-donovan/monsters/common"
	"github.com/l-donovan/monsters/compiler"
)

// Recognizer decides membership for any grammar whose rules only derive
// non-empty strings, recursive ones included.
type Recognizer struct {
	table common.RuleTable
	start int
}

func NewRecognizer(table common.RuleTable, start int) (*Recognizer, error) {
	if err := compiler.Verify(table, start); err != nil {
		return nil, err
	}

	return &Recognizer{table: table, start: start}, nil
}

func (r *Recognizer) Match(message string) bool {
	if len(message) == 0 {
		return false
	}

	run := recognition{
		table:   r.table,
		message: message,
		memo:    map[span][]int{},
		active:  map[span]bool{},
	}

	return slices.Contains(run.rule(r.start, 0, len(message)), len(message))
}

type span struct {
	id, pos, limit int
}

type recognition struct {
	table   common.RuleTable
	message string
	memo    map[span][]int
	active  map[span]bool
	cuts    int
}

// rule returns the sorted end positions of every derivation of id that
// starts at pos and ends at or before limit.
func (r *recognition) rule(id, pos, limit int) []int {
	if pos >= limit {
		return nil
	}

	key := span{id, pos, limit}

	if ends, found := r.memo[key]; found {
		return ends
	}

	// Re-entering the same span means a chain of single-token alternatives
	// leads back here; it cannot add derivations.
	if r.active[key] {
		r.cuts++
		return nil
	}

	r.active[key] = true
	defer delete(r.active, key)

	cuts := r.cuts
	var ends []int

	for _, alt := range r.table[id].Alternatives {
		ends = append(ends, r.sequence(alt, pos, limit)...)
	}

	slices.Sort(ends)
	ends = slices.Compact(ends)

	// A result that saw a cut cycle may be partial for spans other than the
	// one that closed the cycle.
	if r.cuts == cuts {
		r.memo[key] = ends
	}

	return ends
}

func (r *recognition) sequence(alt common.Alternative, pos, limit int) []int {
	positions := []int{pos}

	for i, token := range alt {
		// Every token after this one needs at least one character.
		tokenLimit := limit - (len(alt) - i - 1)
		var next []int

		for _, p := range positions {
			if token.IsTerminal() {
				if p < tokenLimit && r.message[p] == token.Terminal {
					next = append(next, p+1)
				}

				continue
			}

			next = append(next, r.rule(token.Ref, p, tokenLimit)...)
		}

		if len(next) == 0 {
			return nil
		}

		slices.Sort(next)
		positions = slices.Compact(next)
	}

	return positions
}
