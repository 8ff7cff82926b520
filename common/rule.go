package common

import (
	"sort"
	"strconv"
)

// Token

// Token is one element of an alternative: either a terminal character or a
// reference to another rule.
type Token struct {
	Terminal byte
	Ref      int
}

func TerminalToken(ch byte) Token {
	return Token{Terminal: ch}
}

func RefToken(id int) Token {
	return Token{Ref: id}
}

func (t Token) IsTerminal() bool {
	return t.Terminal != 0
}

func (t Token) String() string {
	if t.IsTerminal() {
		return strconv.Quote(string(t.Terminal))
	}

	return strconv.Itoa(t.Ref)
}

// Alternative

type Alternative []Token

// Rule

type Rule struct {
	ID           int
	Alternatives []Alternative
}

// Terminal reports the character of a canonical terminal rule such as
// `4: "a"`.
func (r Rule) Terminal() (byte, bool) {
	if len(r.Alternatives) != 1 || len(r.Alternatives[0]) != 1 {
		return 0, false
	}

	token := r.Alternatives[0][0]
	return token.Terminal, token.IsTerminal()
}

// HasShape reports whether the rule's alternatives are exactly the given
// reference sequences.
func (r Rule) HasShape(shape ...[]int) bool {
	if len(r.Alternatives) != len(shape) {
		return false
	}

	for i, alt := range r.Alternatives {
		if len(alt) != len(shape[i]) {
			return false
		}

		for j, token := range alt {
			if token.IsTerminal() || token.Ref != shape[i][j] {
				return false
			}
		}
	}

	return true
}

// Rule table

type RuleTable map[int]Rule

// IDs returns the rule ids in ascending order.
func (t RuleTable) IDs() []int {
	ids := make([]int, 0, len(t))

	for id := range t {
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids
}

// With returns a copy of the table in which the given rules replace (or add
// to) the existing entries.
func (t RuleTable) With(rules ...Rule) RuleTable {
	out := make(RuleTable, len(t)+len(rules))

	for id, rule := range t {
		out[id] = rule
	}

	for _, rule := range rules {
		out[rule.ID] = rule
	}

	return out
}

func (t RuleTable) Has(ids ...int) bool {
	for _, id := range ids {
		if _, found := t[id]; !found {
			return false
		}
	}

	return true
}

// Input

type Input struct {
	Rules    RuleTable
	Messages []string
}
