package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ParseFormat validates an --output value. Empty means table.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", OutputTable:
		return OutputTable, nil
	case OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Printer writes results in the selected format.
type Printer struct {
	Out     io.Writer
	Format  string
	NoColor bool
}

// Value prints v. Tables show objects as fields and arrays as rows.
func (p *Printer) Value(v jsonvalue.Value) error {
	return p.List(v, "", nil)
}

// List prints a listing. In table format the rows are taken from itemsPath
// within v (v itself when empty) and cols pick the cells; json and yaml
// print v whole.
func (p *Printer) List(v jsonvalue.Value, itemsPath string, cols []Column) error {
	switch p.Format {
	case OutputJSON:
		_, err := fmt.Fprintln(p.Out, strings.TrimRight(FormatJSON(v, p.NoColor), "\n"))
		return err
	case OutputYAML:
		out, err := FormatYAML(v, p.NoColor)
		if err != nil {
			return err
		}
		_, err = io.WriteString(p.Out, out)
		return err
	}

	rows := v
	if itemsPath != "" && v.Has(itemsPath) {
		rows = v.Get(itemsPath)
	}
	switch rows.Kind() {
	case jsonvalue.Array:
		if rows.Len() == 0 {
			_, err := fmt.Fprintln(p.Out, "No results.")
			return err
		}
		return RenderRows(p.Out, rows, cols)
	case jsonvalue.Object:
		return RenderFields(p.Out, rows)
	default:
		_, err := fmt.Fprintln(p.Out, CellText(v))
		return err
	}
}
