package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/l-donovan/monsters"
	"github.com/l-donovan/monsters/common"
	"github.com/l-donovan/monsters/parser"
)

const defaultInput = "inputData.txt"

func newRootCommand() *cobra.Command {
	var verbose, printRules, recognize bool

	cmd := &cobra.Command{
		Use:           "monsters [input]",
		Short:         "Count the messages that match a rule grammar",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultInput

			if len(args) == 1 {
				path = args[0]
			}

			level := slog.LevelInfo

			if verbose {
				level = slog.LevelDebug
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			logger.Info("start", "input", path)

			opts := []monsters.Option{monsters.WithLogger(logger)}

			if recognize {
				opts = append(opts, monsters.WithRecognizer())
			}

			if printRules {
				contents, err := os.ReadFile(path)

				if err != nil {
					return fmt.Errorf("%w: %v", monsters.ErrInputUnavailable, err)
				}

				input, err := parser.Parse(string(contents))

				if err != nil {
					return err
				}

				fmt.Fprint(cmd.OutOrStdout(), common.Serialize(input.Rules))
				return nil
			}

			result, err := monsters.SolveFile(cmd.Context(), path, opts...)

			if err != nil {
				return err
			}

			return monsters.Report(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug details")
	cmd.Flags().BoolVar(&printRules, "print-rules", false, "print the parsed rules and exit")
	cmd.Flags().BoolVar(&recognize, "recognizer", false, "always use the general recognizer")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var perr *parser.ParseError

		if errors.As(err, &perr) {
			perr.PrintContext(os.Stderr, 2)
		}

		stop()
		os.Exit(1)
	}
}
