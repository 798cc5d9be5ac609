package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// renderTable renders a header-prefixed raw result (element 0 is the column
// names, the rest are row value sequences) as a bordered table.
func renderTable(w io.Writer, seqs [][]any) {
	if len(seqs) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(seqs[0]))

	for _, row := range seqs[1:] {
		cells := make(table.Row, len(row))
		for i, v := range row {
			// Convert []byte to string for readability
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			cells[i] = v
		}
		t.AppendRow(cells)
	}

	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(seqs)-1)
}
