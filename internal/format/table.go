// table.go renders CLI tables.

package format

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table writes rows under headers as a rounded table. Columns listed in
// right are right-aligned (0-based).
func Table(w io.Writer, headers []string, rows [][]string, right ...int) error {
	columns := len(headers)
	if columns == 0 {
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(right))
	for _, c := range right {
		configs = append(configs, table.ColumnConfig{
			Number:      c + 1,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}
