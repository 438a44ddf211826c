package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"ledgercheck/internal/quality"
	"ledgercheck/internal/reconcile"
)

// Renderer writes tables to a terminal, coloring statuses and bands when the
// output supports it.
type Renderer struct {
	out      io.Writer
	useColor bool
}

// NewRenderer creates a renderer for the given writer. Color is enabled only
// when the writer is a TTY and not explicitly disabled.
func NewRenderer(out io.Writer, noColor bool) *Renderer {
	useColor := !noColor
	if f, ok := out.(*os.File); ok {
		useColor = useColor && isatty.IsTerminal(f.Fd())
	} else {
		useColor = false
	}
	return &Renderer{out: out, useColor: useColor}
}

// Render writes one table.
func (r *Renderer) Render(t Table) {
	if t.Title != "" {
		fmt.Fprintln(r.out, t.Title)
	}
	if len(t.Rows) == 0 {
		fmt.Fprintln(r.out, "  (no rows)")
		return
	}

	table := tablewriter.NewWriter(r.out)
	table.SetHeader(t.Headers)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range t.Rows {
		out := row
		if r.useColor {
			out = append([]string(nil), row...)
			last := len(out) - 1
			out[last] = r.colorize(out[last])
		}
		table.Append(out)
	}

	table.Render()
	fmt.Fprintln(r.out)
}

// colorize maps statuses and bands to severity colors.
func (r *Renderer) colorize(s string) string {
	switch s {
	case reconcile.StatusException, reconcile.StatusSignificantChange, quality.BandPoor:
		return color.RedString(s)
	case reconcile.StatusWarning, quality.BandFair, reconcile.StatusOnlyInA, reconcile.StatusOnlyInB:
		return color.YellowString(s)
	case reconcile.StatusOK, reconcile.StatusNormal, reconcile.StatusInBoth,
		quality.BandExcellent, quality.BandGood:
		return color.GreenString(s)
	default:
		return s
	}
}

// WriteCSV serializes a table as CSV, header row first.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes a table to a CSV file.
func SaveCSV(path string, t Table) error {
	f, err := os.Create(path) // #nosec G304 - operator-chosen output path
	if err != nil {
		return err
	}
	if err := WriteCSV(f, t); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
