package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunExample(t *testing.T) {
	out, err := run(t, "../../testdata/example2.txt")
	require.NoError(t, err)
	require.Contains(t, out, "12")
	require.Contains(t, out, "15")
}

func TestRunPrintRules(t *testing.T) {
	out, err := run(t, "--print-rules", "../../testdata/example1.txt")
	require.NoError(t, err)
	require.Equal(t, "0: 4 1 5\n1: 2 3 | 3 2\n2: 4 4 | 5 5\n3: 4 5 | 5 4\n4: \"a\"\n5: \"b\"\n", out)
}

func TestRunMissingInput(t *testing.T) {
	_, err := run(t, "does-not-exist.txt")
	require.Error(t, err)
}

func TestRunTooManyArgs(t *testing.T) {
	_, err := run(t, "a.txt", "b.txt")
	require.Error(t, err)
}
