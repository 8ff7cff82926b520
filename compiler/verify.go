package compiler

import (
	"fmt"

	"golang.org/x/exp/ebnf"

	"github.com/l-donovan/monsters/common"
)

func productionName(id int) string {
	return fmt.Sprintf("R%d", id)
}

// Grammar translates the rules reachable from start into an EBNF grammar.
// Rule n becomes production Rn; references to rules missing from the table
// are kept as names so that ebnf.Verify can report them.
func Grammar(table common.RuleTable, start int) ebnf.Grammar {
	grammar := ebnf.Grammar{}
	pending := []int{start}

	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		name := productionName(id)

		if _, done := grammar[name]; done {
			continue
		}

		rule, found := table[id]

		if !found {
			continue
		}

		alts := make(ebnf.Alternative, len(rule.Alternatives))

		for i, alt := range rule.Alternatives {
			seq := make(ebnf.Sequence, len(alt))

			for j, token := range alt {
				if token.IsTerminal() {
					seq[j] = &ebnf.Token{String: string(token.Terminal)}
					continue
				}

				seq[j] = &ebnf.Name{String: productionName(token.Ref)}
				pending = append(pending, token.Ref)
			}

			alts[i] = seq
		}

		prod := &ebnf.Production{Name: &ebnf.Name{String: name}}

		if len(alts) == 1 {
			prod.Expr = alts[0]
		} else {
			prod.Expr = alts
		}

		grammar[name] = prod
	}

	return grammar
}

// Verify checks that every rule reachable from start is defined.
func Verify(table common.RuleTable, start int) error {
	if _, found := table[start]; !found {
		return fmt.Errorf("%w %d", ErrUndefinedRule, start)
	}

	if err := ebnf.Verify(Grammar(table, start), productionName(start)); err != nil {
		return fmt.Errorf("%w: %v", ErrUndefinedRule, err)
	}

	return nil
}
