package parser

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/l-donovan/monsters/common"
)

type Parser struct {
	rules *participle.Parser[ruleLine]
}

func NewParser() *Parser {
	return &Parser{rules: newRuleParser()}
}

var defaultParser = NewParser()

// Parse splits contents at the first blank line into the rule block and the
// message block.
func Parse(contents string) (*common.Input, error) {
	return defaultParser.Parse(contents)
}

// ParseRule parses a single rule line such as `8: 42 | 42 8`.
func ParseRule(line string) (common.Rule, error) {
	return defaultParser.ParseRule(line)
}

func (p *Parser) Parse(contents string) (*common.Input, error) {
	input := &common.Input{Rules: common.RuleTable{}}
	declared := map[int]common.StringPos{}
	messagePart := false

	for _, line := range common.NewMetaString(contents).Lines() {
		if messagePart {
			input.Messages = append(input.Messages, line.Val())
			continue
		}

		if line.IsBlank() {
			messagePart = true
			continue
		}

		rule, err := p.parseLine(contents, line)

		if err != nil {
			return nil, err
		}

		if first, found := declared[rule.ID]; found {
			return nil, &ParseError{
				Contents: contents,
				Loc:      line.Loc,
				Msg:      fmt.Sprintf("rule %d already declared at %s", rule.ID, first),
				Err:      ErrDuplicateRule,
			}
		}

		declared[rule.ID] = line.Loc
		input.Rules[rule.ID] = rule
	}

	if len(input.Rules) == 0 {
		return nil, ErrNoRules
	}

	return input, nil
}

func (p *Parser) ParseRule(line string) (common.Rule, error) {
	return p.parseLine(line, common.NewMetaString(line))
}

func (p *Parser) parseLine(contents string, line common.MetaString) (common.Rule, error) {
	ast, err := p.rules.ParseString("", line.Val())

	if err != nil {
		loc := line.Loc
		msg := err.Error()
		var perr participle.Error

		if errors.As(err, &perr) {
			loc = line.Loc.Offset(max(perr.Position().Column-1, 0))
			msg = perr.Message()
		}

		return common.Rule{}, &ParseError{Contents: contents, Loc: loc, Msg: msg, Err: err}
	}

	rule := common.Rule{ID: ast.ID, Alternatives: make([]common.Alternative, len(ast.Alternatives))}

	for i, alt := range ast.Alternatives {
		tokens := make(common.Alternative, len(alt.Tokens))

		for j, tok := range alt.Tokens {
			if tok.Ref != nil {
				tokens[j] = common.RefToken(*tok.Ref)
				continue
			}

			if len(*tok.Terminal) != 1 || (*tok.Terminal)[0] == 0 {
				return common.Rule{}, &ParseError{
					Contents: contents,
					Loc:      line.Loc.Offset(max(tok.Pos.Column-1, 0)),
					Msg:      fmt.Sprintf("terminal %q in rule %d is not a single character", *tok.Terminal, ast.ID),
					Err:      ErrBadTerminal,
				}
			}

			tokens[j] = common.TerminalToken((*tok.Terminal)[0])
		}

		rule.Alternatives[i] = tokens
	}

	return rule, nil
}
