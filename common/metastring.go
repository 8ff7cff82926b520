package common

import (
	"bufio"
	"fmt"
	"strings"
)

type StringPos struct {
	Pos, Line, Col int
}

func (s StringPos) String() string {
	return fmt.Sprintf("%d:%d", s.Line+1, s.Col+1)
}

// Offset returns the position of the byte col characters into the same line.
func (s StringPos) Offset(col int) StringPos {
	return StringPos{s.Pos + col, s.Line, s.Col + col}
}

type MetaString struct {
	contents string
	Loc      StringPos
}

func NewMetaString(contents string) MetaString {
	return MetaString{contents, StringPos{0, 0, 0}}
}

// Lines splits the string into its lines with line endings removed. Each
// line remembers where it starts in the original text. A trailing newline
// does not produce an empty last line.
func (m MetaString) Lines() []MetaString {
	var lines []MetaString

	scanner := bufio.NewScanner(strings.NewReader(m.contents))
	scanner.Buffer(make([]byte, 0, 64*1024), len(m.contents)+1)
	pos := m.Loc

	for scanner.Scan() {
		raw := scanner.Bytes()
		lines = append(lines, MetaString{string(raw), pos})
		pos = StringPos{pos.Pos + len(raw) + 1, pos.Line + 1, 0}
	}

	return lines
}

func (m MetaString) IsBlank() bool {
	return strings.TrimSpace(m.contents) == ""
}

func (m MetaString) Val() string {
	return m.contents
}

func (m MetaString) String() string {
	if strings.Contains(m.contents, "\"") {
		return fmt.Sprintf("'%s' %s", m.contents, m.Loc)
	} else {
		return fmt.Sprintf("%#v %s", m.contents, m.Loc)
	}
}
