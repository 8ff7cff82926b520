package monsters

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Report renders both counts as a table.
func Report(w io.Writer, result Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Part", "Accepted", "Messages")

	rows := [][]string{
		{"1", strconv.Itoa(result.Part1), strconv.Itoa(result.Messages)},
		{"2", strconv.Itoa(result.Part2), strconv.Itoa(result.Messages)},
	}

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}
