package matcher

import (
	"errors"
	"fmt"

	"github.com/l-donovan/monsters/compiler"
)

var ErrLengthMismatch = errors.New("rules 42 and 31 compile to strings of different length")

type chunkKind int

const (
	chunkNeither chunkKind = iota
	chunk42
	chunk31
)

type state int

const (
	expect42First state = iota
	in42Run
	in31Run
	rejected
)

// Chunked recognizes messages made of fixed-length chunks drawn from the
// languages of rules 42 and 31.
type Chunked struct {
	s42, s31 map[string]struct{}
	length   int
}

func NewChunked(s42, s31 compiler.CompiledRule) (*Chunked, error) {
	l42, err := s42.Length()

	if err != nil {
		return nil, fmt.Errorf("rule 42: %w", err)
	}

	l31, err := s31.Length()

	if err != nil {
		return nil, fmt.Errorf("rule 31: %w", err)
	}

	if l42 != l31 {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, l42, l31)
	}

	return &Chunked{s42: s42.Set(), s31: s31.Set(), length: l42}, nil
}

// ChunkLength is the length shared by every string of rules 42 and 31.
func (c *Chunked) ChunkLength() int {
	return c.length
}

func (c *Chunked) classify(chunk string) chunkKind {
	if _, found := c.s42[chunk]; found {
		return chunk42
	}

	if _, found := c.s31[chunk]; found {
		return chunk31
	}

	return chunkNeither
}

func (c *Chunked) in42(message string, i int) bool {
	_, found := c.s42[message[i*c.length:(i+1)*c.length]]
	return found
}

func (c *Chunked) in31(message string, i int) bool {
	_, found := c.s31[message[i*c.length:(i+1)*c.length]]
	return found
}

// MatchPart1 accepts exactly the messages of the form 42 42 31.
func (c *Chunked) MatchPart1(message string) bool {
	if len(message) != 3*c.length {
		return false
	}

	return c.in42(message, 0) && c.in42(message, 1) && c.in31(message, 2)
}

// Counts walks the message chunk by chunk and returns the length of the
// leading run of 42-chunks and of the 31-chunks that follow it. ok is false
// when the message is not a whole number of chunks or the two runs do not
// cover it.
func (c *Chunked) Counts(message string) (a, b int, ok bool) {
	if c.length == 0 || len(message)%c.length != 0 {
		return 0, 0, false
	}

	s := expect42First

	for i := 0; i < len(message)/c.length && s != rejected; i++ {
		chunk := message[i*c.length : (i+1)*c.length]
		kind := c.classify(chunk)

		// The two languages are disjoint for puzzle input. When they are
		// not, a chunk in both continues whichever run is current.
		if kind == chunk42 && s == in31Run {
			if _, found := c.s31[chunk]; found {
				kind = chunk31
			}
		}

		switch s {
		case expect42First:
			if kind != chunk42 {
				s = rejected
				break
			}

			a++
			s = in42Run
		case in42Run:
			switch kind {
			case chunk42:
				a++
			case chunk31:
				b++
				s = in31Run
			default:
				s = rejected
			}
		case in31Run:
			if kind != chunk31 {
				s = rejected
				break
			}

			b++
		}
	}

	if s == rejected {
		return a, b, false
	}

	return a, b, true
}

// MatchPart2 accepts the messages of the form 42^a 31^b with a > b >= 1.
func (c *Chunked) MatchPart2(message string) bool {
	a, b, ok := c.Counts(message)
	return ok && a >= 1 && b >= 1 && a > b
}
