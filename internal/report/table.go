package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// RenderFileTable renders one row per FileReport for TTY output.
func RenderFileTable(files []FileReport) string {
	headers := []string{
		"File", "Blank Before", "Trunc Before", "Filled",
		"Blank After", "Trunc After", "Bytes Filled", "Status",
	}
	aligns := []columnAlignment{
		alignLeft, alignRight, alignRight, alignRight,
		alignRight, alignRight, alignRight, alignLeft,
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.FilePath,
			percentCell(f.BlankBeforePercent()),
			percentCell(f.TruncatedBeforePercent()),
			itoa(f.Filled),
			percentCell(f.BlankAfterPercent()),
			percentCell(f.TruncatedAfterPercent()),
			humanizeBytes(f.BytesFilled),
			statusCell(f),
		})
	}
	return renderTable(headers, rows, aligns)
}
