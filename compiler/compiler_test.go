package compiler

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/l-donovan/monsters/common"
	"github.com/l-donovan/monsters/parser"
)

func loadTable(t *testing.T, path string) common.RuleTable {
	t.Helper()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	input, err := parser.Parse(string(contents))
	require.NoError(t, err)

	return input.Rules
}

func tableOf(t *testing.T, lines ...string) common.RuleTable {
	t.Helper()

	table := common.RuleTable{}

	for _, line := range lines {
		rule, err := parser.ParseRule(line)
		require.NoError(t, err)
		table[rule.ID] = rule
	}

	return table
}

func TestCompileTerminal(t *testing.T) {
	table := tableOf(t, `4: "a"`, `5: "b"`)

	got, err := Compile(table, 4)
	require.NoError(t, err)
	require.Equal(t, CompiledRule{"a"}, got)

	got, err = Compile(table, 5)
	require.NoError(t, err)
	require.Equal(t, CompiledRule{"b"}, got)
}

func TestCompileOrder(t *testing.T) {
	table := loadTable(t, "../testdata/example1.txt")

	got, err := Compile(table, 2)
	require.NoError(t, err)
	require.Equal(t, CompiledRule{"aa", "bb"}, got)

	got, err = Compile(table, 1)
	require.NoError(t, err)
	require.Equal(t, CompiledRule{"aaab", "aaba", "bbab", "bbba", "abaa", "abbb", "baaa", "babb"}, got)

	got, err = Compile(table, 0)
	require.NoError(t, err)
	require.Len(t, got, 8)
	require.Equal(t, "aaaabb", got[0])
	require.Contains(t, got, "ababbb")
	require.Contains(t, got, "abbbab")
	require.NotContains(t, got, "bababa")
}

func TestCompileUniformLength(t *testing.T) {
	table := loadTable(t, "../testdata/example2.txt")
	c := New(table)

	for _, id := range table.IDs() {
		t.Run(fmt.Sprint(id), func(t *testing.T) {
			compiled, err := c.Compile(id)
			require.NoError(t, err)

			_, err = compiled.Length()
			require.NoError(t, err)
		})
	}

	s42, err := c.Compile(42)
	require.NoError(t, err)
	s31, err := c.Compile(31)
	require.NoError(t, err)

	l42, err := s42.Length()
	require.NoError(t, err)
	l31, err := s31.Length()
	require.NoError(t, err)

	require.Equal(t, 5, l42)
	require.Equal(t, l42, l31)
	require.Len(t, s42, 16)
	require.Len(t, s31, 16)
}

func TestCompileProductCardinality(t *testing.T) {
	table := loadTable(t, "../testdata/example2.txt")
	c := New(table)

	for _, id := range table.IDs() {
		rule := table[id]

		if _, ok := rule.Terminal(); ok {
			continue
		}

		compiled, err := c.Compile(id)
		require.NoError(t, err)

		want := 0

		for _, alt := range rule.Alternatives {
			n := 1

			for _, token := range alt {
				sub, err := c.Compile(token.Ref)
				require.NoError(t, err)
				n *= len(sub)
			}

			want += n
		}

		require.Len(t, compiled, want, "rule %d", id)
	}
}

func TestCompileKeepsDuplicates(t *testing.T) {
	table := tableOf(t, `0: 1 | 2`, `1: "a"`, `2: "a"`)

	got, err := Compile(table, 0)
	require.NoError(t, err)
	require.Equal(t, CompiledRule{"a", "a"}, got)
	require.Len(t, got.Set(), 1)
}

func TestCompileMixedTokens(t *testing.T) {
	table := tableOf(t, `0: 1 "b" | "a" "a"`, `1: "a" | "b"`)

	got, err := Compile(table, 0)
	require.NoError(t, err)
	require.Equal(t, CompiledRule{"ab", "bb", "aa"}, got)
}

func TestCompileErrors(t *testing.T) {
	table := tableOf(t, `0: 1 2`, `1: "a"`, `3: 3 1 | 1`)

	_, err := Compile(table, 0)
	require.ErrorIs(t, err, ErrUndefinedRule)
	require.Contains(t, err.Error(), "undefined rule 2")

	_, err = Compile(table, 3)
	require.ErrorIs(t, err, ErrCycle)

	_, err = Compile(table, 7)
	require.ErrorIs(t, err, ErrUndefinedRule)
}

func TestCompileCycleOutsideTarget(t *testing.T) {
	table := loadTable(t, "../testdata/example2.txt")
	override8, err := parser.ParseRule(`8: 42 | 42 8`)
	require.NoError(t, err)
	override11, err := parser.ParseRule(`11: 42 31 | 42 11 31`)
	require.NoError(t, err)

	patched := table.With(override8, override11)
	c := New(patched)

	_, err = c.Compile(42)
	require.NoError(t, err)
	_, err = c.Compile(31)
	require.NoError(t, err)

	_, err = c.Compile(0)
	require.ErrorIs(t, err, ErrCycle)
}

func TestCompiledRuleLength(t *testing.T) {
	_, err := CompiledRule{}.Length()
	require.ErrorIs(t, err, ErrEmpty)

	_, err = CompiledRule{"ab", "a"}.Length()
	require.ErrorIs(t, err, ErrNonUniformLength)

	n, err := CompiledRule{"ab", "ba"}.Length()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestProduct(t *testing.T) {
	got := product([][]string{{"a", "b"}, {"x"}, {"1", "2"}})
	require.Equal(t, []string{"ax1", "ax2", "bx1", "bx2"}, got)

	require.Empty(t, product([][]string{{"a"}, {}}))
}

func TestVerify(t *testing.T) {
	require.NoError(t, Verify(loadTable(t, "../testdata/example1.txt"), 0))
	require.NoError(t, Verify(loadTable(t, "../testdata/example2.txt"), 0))

	// Unreachable rules are not part of the checked grammar.
	table := tableOf(t, `0: 1`, `1: "a"`, `2: 9`)
	require.NoError(t, Verify(table, 0))

	err := Verify(tableOf(t, `0: 1 2`, `1: "a"`), 0)
	require.ErrorIs(t, err, ErrUndefinedRule)
	require.Contains(t, err.Error(), "R2")

	err = Verify(table, 5)
	require.ErrorIs(t, err, ErrUndefinedRule)
}

func TestVerifyRecursive(t *testing.T) {
	table := tableOf(t, `0: 8 11`, `8: 42 | 42 8`, `11: 42 31 | 42 11 31`, `42: "a"`, `31: "b"`)
	require.NoError(t, Verify(table, 0))

	grammar := Grammar(table, 0)
	require.Len(t, grammar, 5)
	require.Contains(t, grammar, "R42")
}
