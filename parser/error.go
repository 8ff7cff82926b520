package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/l-donovan/monsters/common"
)

var (
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrBadTerminal   = errors.New("terminal must be a single character")
	ErrNoRules       = errors.New("input has no rules")
)

type ParseError struct {
	Contents string
	Loc      common.StringPos
	Msg      string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func digitCount(input int) int {
	if input == 0 {
		return 1
	}

	count := 0

	for input != 0 {
		input /= 10
		count++
	}

	return count
}

// PrintContext writes the offending line, contextLineCount lines on either
// side of it, and a marker under the column the error points at.
func (e *ParseError) PrintContext(w io.Writer, contextLineCount int) {
	lines := strings.Split(e.Contents, "\n")

	if e.Loc.Line >= len(lines) {
		return
	}

	startLineNum := max(0, e.Loc.Line-contextLineCount)
	endLineNum := min(e.Loc.Line+contextLineCount+1, len(lines))
	maxLineNumWidth := digitCount(endLineNum + 1)

	fmt.Fprintln(w, "Context:")

	for i := startLineNum; i < endLineNum; i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		fmt.Fprintf(w, "%*d │ %s\n", maxLineNumWidth, i+1, line)

		if i == e.Loc.Line {
			col := min(e.Loc.Col, len(line))
			tabCount := strings.Count(line[:col], "\t")
			left := strings.Repeat("\t", tabCount) + strings.Repeat(" ", col-tabCount)
			fmt.Fprintf(w, "%*s │ %s^ %s\n", maxLineNumWidth, "", left, e.Msg)
		}
	}
}
