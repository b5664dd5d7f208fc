package ui

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// DefaultCellWidth caps cells when the output width is unknown.
const DefaultCellWidth = 48

// Column selects one field of each row. Path is a gjson path relative to the
// row, e.g. "name" or "bot.id".
type Column struct {
	Header string
	Path   string
}

// Columns builds columns whose headers are their paths.
func Columns(paths ...string) []Column {
	cols := make([]Column, 0, len(paths))
	for _, p := range paths {
		cols = append(cols, Column{Header: p, Path: p})
	}
	return cols
}

// RenderRows writes one table row per element of rows. With no columns the
// keys of the first element are used.
func RenderRows(w io.Writer, rows jsonvalue.Value, cols []Column) error {
	items := rows.Array()
	if len(cols) == 0 && len(items) > 0 {
		cols = Columns(items[0].Keys()...)
	}
	if len(cols) == 0 {
		cols = []Column{{Header: "value"}}
	}

	width := cellWidth(w, len(cols))
	table := tablewriter.NewWriter(w)
	headers := make([]string, 0, len(cols))
	for _, c := range cols {
		headers = append(headers, c.Header)
	}
	table.Header(headers)

	for _, item := range items {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			cell := item
			if c.Path != "" {
				cell = item.Get(c.Path)
			}
			row = append(row, TruncateWithEllipsis(CellText(cell), width))
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderFields writes an object as a two-column field/value table.
func RenderFields(w io.Writer, obj jsonvalue.Value) error {
	width := cellWidth(w, 2)
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")
	for _, key := range obj.Keys() {
		if err := table.Append([]string{key, TruncateWithEllipsis(CellText(obj.Get(key)), width)}); err != nil {
			return err
		}
	}
	return table.Render()
}

// CellText renders a value for a table cell: strings unquoted, missing and
// null values blank, everything else as compact JSON.
func CellText(v jsonvalue.Value) string {
	switch v.Kind() {
	case jsonvalue.Invalid, jsonvalue.Null:
		return ""
	case jsonvalue.String:
		return strings.ReplaceAll(v.Str(), "\n", " ")
	default:
		return v.String()
	}
}

func cellWidth(w io.Writer, columns int) int {
	total := TerminalWidth(w)
	if total == 0 {
		return DefaultCellWidth
	}
	// Each column costs three characters of border and padding.
	width := (total - 3*columns - 1) / columns
	if width < 8 {
		width = 8
	}
	return width
}

// TruncateWithEllipsis truncates a string to maxLen runes with ellipsis.
func TruncateWithEllipsis(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return strings.Repeat(".", maxLen)
	}
	return string(r[:maxLen-1]) + "…"
}
