package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ruleLine is one line of the rule block, e.g. `1: 2 3 | 3 2` or `4: "a"`.
type ruleLine struct {
	ID           int            `@Int ":"`
	Alternatives []*alternative `@@ ( "|" @@ )*`
}

type alternative struct {
	Tokens []*token `@@+`
}

type token struct {
	Pos      lexer.Position
	Ref      *int    `  @Int`
	Terminal *string `| @String`
}

var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Punct", Pattern: `[:|]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

func newRuleParser() *participle.Parser[ruleLine] {
	return participle.MustBuild[ruleLine](
		participle.Lexer(ruleLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
}
