package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/l-donovan/monsters/common"
)

var (
	ErrUndefinedRule    = errors.New("undefined rule")
	ErrCycle            = errors.New("rule is recursive")
	ErrNonUniformLength = errors.New("compiled strings differ in length")
	ErrEmpty            = errors.New("compiled rule is empty")
)

// CompiledRule is the finite language of a rule, in derivation order.
// Ambiguous grammars produce duplicates; they are kept.
type CompiledRule []string

// Length returns the length shared by every string of the rule.
func (c CompiledRule) Length() (int, error) {
	if len(c) == 0 {
		return 0, ErrEmpty
	}

	length := len(c[0])

	for _, s := range c[1:] {
		if len(s) != length {
			return 0, fmt.Errorf("%w: %q has length %d, expected %d", ErrNonUniformLength, s, len(s), length)
		}
	}

	return length, nil
}

func (c CompiledRule) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(c))

	for _, s := range c {
		set[s] = struct{}{}
	}

	return set
}

// Compiler expands rules into the strings they derive. Results are memoized
// by rule id, so a Compiler must not be shared between different tables.
type Compiler struct {
	table    common.RuleTable
	compiled map[int]CompiledRule
	visiting map[int]bool
}

func New(table common.RuleTable) *Compiler {
	return &Compiler{
		table:    table,
		compiled: map[int]CompiledRule{},
		visiting: map[int]bool{},
	}
}

// Compile expands a single rule of table. Use New to share work between
// several rules of the same table.
func Compile(table common.RuleTable, id int) (CompiledRule, error) {
	return New(table).Compile(id)
}

func (c *Compiler) Compile(id int) (CompiledRule, error) {
	if compiled, found := c.compiled[id]; found {
		return compiled, nil
	}

	rule, found := c.table[id]

	if !found {
		return nil, fmt.Errorf("%w %d", ErrUndefinedRule, id)
	}

	if c.visiting[id] {
		return nil, fmt.Errorf("%w: %d", ErrCycle, id)
	}

	c.visiting[id] = true
	defer delete(c.visiting, id)

	if ch, ok := rule.Terminal(); ok {
		c.compiled[id] = CompiledRule{string(ch)}
		return c.compiled[id], nil
	}

	var out CompiledRule

	for _, alt := range rule.Alternatives {
		positions := make([][]string, len(alt))

		for i, token := range alt {
			if token.IsTerminal() {
				positions[i] = []string{string(token.Terminal)}
				continue
			}

			sub, err := c.Compile(token.Ref)

			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", id, err)
			}

			positions[i] = sub
		}

		out = append(out, product(positions)...)
	}

	c.compiled[id] = out
	return out, nil
}

// product concatenates one string from each position, in lexicographic order
// of the chosen indices.
func product(positions [][]string) []string {
	total := 1

	for _, choices := range positions {
		total *= len(choices)
	}

	if total == 0 {
		return nil
	}

	out := make([]string, 0, total)
	indices := make([]int, len(positions))
	var sb strings.Builder

	for {
		sb.Reset()

		for i, choices := range positions {
			sb.WriteString(choices[indices[i]])
		}

		out = append(out, sb.String())

		// Advance the rightmost index that still has choices left.
		i := len(indices) - 1

		for ; i >= 0; i-- {
			indices[i]++

			if indices[i] < len(positions[i]) {
				break
			}

			indices[i] = 0
		}

		if i < 0 {
			return out
		}
	}
}
