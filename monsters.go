// Package monsters counts the messages that conform to a rule grammar, both
// for the grammar as given and with rules 8 and 11 replaced by their
// recursive forms.
package monsters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/l-donovan/monsters/common"
	"github.com/l-donovan/monsters/compiler"
	"github.com/l-donovan/monsters/matcher"
	"github.com/l-donovan/monsters/parser"
)

const StartRule = 0

var ErrInputUnavailable = errors.New("input unavailable")

// Part2Overrides replace rules 8 and 11 for the second count.
var Part2Overrides = []string{
	`8: 42 | 42 8`,
	`11: 42 31 | 42 11 31`,
}

type Strategy int

const (
	// StrategyChunked splits messages into chunks of the length shared by
	// rules 42 and 31.
	StrategyChunked Strategy = iota
	// StrategyRecognizer runs the general recognizer from rule 0.
	StrategyRecognizer
)

func (s Strategy) String() string {
	switch s {
	case StrategyChunked:
		return "chunked"
	case StrategyRecognizer:
		return "recognizer"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

type Result struct {
	Part1    int
	Part2    int
	Messages int
	Strategy Strategy
	// ChunkLength is only set for StrategyChunked.
	ChunkLength int
}

type config struct {
	logger         *slog.Logger
	forceRecognize bool
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRecognizer skips the chunk matchers even when the grammar allows them.
func WithRecognizer() Option {
	return func(c *config) {
		c.forceRecognize = true
	}
}

func newConfig(opts []Option) *config {
	c := &config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func SolveFile(ctx context.Context, path string, opts ...Option) (Result, error) {
	contents, err := os.ReadFile(path)

	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}

	return Solve(ctx, string(contents), opts...)
}

func Solve(ctx context.Context, contents string, opts ...Option) (Result, error) {
	input, err := parser.Parse(contents)

	if err != nil {
		return Result{}, err
	}

	return Evaluate(ctx, input, opts...)
}

// Part2Rules returns the table with the recursive rules 8 and 11. A table
// without both rules is returned unchanged.
func Part2Rules(table common.RuleTable) (common.RuleTable, error) {
	if !table.Has(8, 11) {
		return table, nil
	}

	overrides := make([]common.Rule, len(Part2Overrides))

	for i, line := range Part2Overrides {
		rule, err := parser.ParseRule(line)

		if err != nil {
			return nil, err
		}

		overrides[i] = rule
	}

	return table.With(overrides...), nil
}

// chunkable reports whether rule 0 is `8 11` with `8: 42` and `11: 42 31`,
// the shape both chunk matchers assume.
func chunkable(table common.RuleTable) bool {
	return table[StartRule].HasShape([]int{8, 11}) &&
		table[8].HasShape([]int{42}) &&
		table[11].HasShape([]int{42, 31})
}

type matchFunc func(message string) bool

func Evaluate(ctx context.Context, input *common.Input, opts ...Option) (Result, error) {
	c := newConfig(opts)
	logger := c.logger

	logger.Debug("parsed input", "rules", len(input.Rules), "messages", len(input.Messages))

	if err := compiler.Verify(input.Rules, StartRule); err != nil {
		return Result{}, err
	}

	part2Table, err := Part2Rules(input.Rules)

	if err != nil {
		return Result{}, err
	}

	result := Result{Messages: len(input.Messages), Strategy: StrategyRecognizer}
	var part1, part2 matchFunc

	if !c.forceRecognize && chunkable(input.Rules) {
		chunked, err := newChunked(input.Rules, logger)

		if err != nil {
			logger.Debug("chunk matchers unavailable", "err", err)
		} else {
			result.Strategy = StrategyChunked
			result.ChunkLength = chunked.ChunkLength()
			part1, part2 = chunked.MatchPart1, chunked.MatchPart2
		}
	}

	if result.Strategy == StrategyRecognizer {
		r1, err := matcher.NewRecognizer(input.Rules, StartRule)

		if err != nil {
			return Result{}, err
		}

		r2, err := matcher.NewRecognizer(part2Table, StartRule)

		if err != nil {
			return Result{}, err
		}

		part1, part2 = r1.Match, r2.Match
	}

	logger.Debug("matching messages", "strategy", result.Strategy, "chunkLength", result.ChunkLength)

	if result.Part1, err = count(ctx, input.Messages, part1); err != nil {
		return Result{}, err
	}

	if result.Part2, err = count(ctx, input.Messages, part2); err != nil {
		return Result{}, err
	}

	logger.Info("evaluated messages", "part1", result.Part1, "part2", result.Part2, "messages", result.Messages)

	return result, nil
}

func newChunked(table common.RuleTable, logger *slog.Logger) (*matcher.Chunked, error) {
	c := compiler.New(table)
	s42, err := c.Compile(42)

	if err != nil {
		return nil, err
	}

	s31, err := c.Compile(31)

	if err != nil {
		return nil, err
	}

	logger.Debug("compiled rules", "rule42", len(s42), "rule31", len(s31))

	return matcher.NewChunked(s42, s31)
}

func count(ctx context.Context, messages []string, match matchFunc) (int, error) {
	total := 0

	for _, message := range messages {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		if match(message) {
			total++
		}
	}

	return total, nil
}
