package console

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// RenderTable renders rows under headers as a bordered table.
// useLineChars selects Unicode box drawing characters over ASCII.
func RenderTable(headers []string, rows [][]string, useLineChars bool) string {
	border := lipgloss.ASCIIBorder()
	if useLineChars {
		border = lipgloss.NormalBorder()
	}

	headerStyle := lipgloss.NewStyle().Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	if ColorsEnabled() {
		headerStyle = headerStyle.Bold(true)
	}

	t := table.New().
		Border(border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// PrintTable writes the table rendered by RenderTable to w.
func PrintTable(w io.Writer, headers []string, rows [][]string, useLineChars bool) {
	if len(headers) == 0 {
		return
	}
	fmt.Fprintln(w, RenderTable(headers, rows, useLineChars))
}
