package common

import (
	"strconv"
	"strings"
)

type SerializerConfig struct {
	minify bool
}

func (c SerializerConfig) Sep(separator string, alt string) string {
	if c.minify {
		return alt
	}

	return separator
}

func (c SerializerConfig) rule(rule Rule) string {
	alts := make([]string, len(rule.Alternatives))

	for i, alt := range rule.Alternatives {
		tokens := make([]string, len(alt))

		for j, token := range alt {
			tokens[j] = token.String()
		}

		alts[i] = strings.Join(tokens, " ")
	}

	return strconv.Itoa(rule.ID) + c.Sep(": ", ":") + strings.Join(alts, c.Sep(" | ", "|"))
}

func (c SerializerConfig) table(table RuleTable) string {
	var sb strings.Builder

	for _, id := range table.IDs() {
		sb.WriteString(c.rule(table[id]))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Serialize renders the table in the rule DSL, one rule per line ordered by
// id.
func Serialize(table RuleTable) string {
	return SerializerConfig{}.table(table)
}

func Minify(table RuleTable) string {
	config := SerializerConfig{minify: true}
	return config.table(table)
}

func SerializeRule(rule Rule) string {
	return SerializerConfig{}.rule(rule)
}
