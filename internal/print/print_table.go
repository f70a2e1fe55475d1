package print

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bgunnarsson/psql/internal/record"
)

type Options struct {
	MaxWidth int // max width for each column, 0 = 40
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nullStyle   = cellStyle.Faint(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#595B72"))
)

// RenderTable writes records as a bordered table with one column per field
// name, in order.
func RenderTable(w io.Writer, names []string, records []*record.Record, opts Options) error {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 40
	}

	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "(no columns)")
		return err
	}

	rows := make([][]string, len(records))
	nulls := make([][]bool, len(records))
	for r, rec := range records {
		rows[r] = make([]string, len(names))
		nulls[r] = make([]bool, len(names))
		for c, name := range names {
			v, _ := rec.Get(name)
			rows[r][c] = truncate(formatCell(v), opts.MaxWidth)
			nulls[r][c] = v.IsNothing()
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(names...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(nulls) && nulls[row][col]:
				return nullStyle
			default:
				return cellStyle
			}
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d %s)\n", len(records), plural(len(records), "row", "rows"))
	return err
}

func formatCell(v record.Value) string {
	switch v.Kind() {
	case record.String:
		return v.Str()
	case record.Integer:
		return strconv.FormatInt(v.Int(), 10)
	case record.Float:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case record.Boolean:
		return strconv.FormatBool(v.Bool())
	case record.Binary:
		b := v.Bytes()
		// heuristic: treat as string if printable, else show len
		if utf8.Valid(b) && isPrintable(string(b)) {
			return string(b)
		}
		return fmt.Sprintf("<blob %d bytes>", len(b))
	default:
		return "NULL"
	}
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 32 && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}

func truncate(s string, w int) string {
	if utf8.RuneCountInString(s) <= w {
		return s
	}
	r := []rune(s)
	if w <= 2 {
		return string(r[:w])
	}
	return string(r[:w-3]) + "..."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
