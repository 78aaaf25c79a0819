// Package output renders CLI results with lipgloss.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/quochao170402/cekspek/internal/compare"
	"github.com/quochao170402/cekspek/internal/format"
	"github.com/quochao170402/cekspek/internal/importer"
	"github.com/quochao170402/cekspek/internal/search"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#2563EB")
	colorBorder  = lipgloss.Color("#4B5563")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)

	headerStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render("⚠ ")+fmt.Sprintf(format, args...))
}

func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, errorStyle.Render("✗ ")+fmt.Sprintf(format, args...))
}

func Muted(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Compare renders the comparison with one column per phone. Section titles
// occupy a row of their own.
func Compare(t compare.Table) string {
	headers := make([]string, 0, len(t.Columns)+1)
	headers = append(headers, "")
	for _, c := range t.Columns {
		headers = append(headers, c.BrandName+" "+c.Name)
	}

	sectionRows := map[int]bool{}
	var rows [][]string
	for _, s := range t.Sections {
		sectionRows[len(rows)] = true
		title := make([]string, len(headers))
		title[0] = s.Title
		rows = append(rows, title)
		for _, r := range s.Rows {
			rows = append(rows, append([]string{r.Label}, r.Values...))
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case sectionRows[row]:
				return sectionStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// SearchResults renders one line per summary.
func SearchResults(results []search.Summary) string {
	if len(results) == 0 {
		return mutedStyle.Render("Tidak ada HP yang cocok")
	}
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(SearchLine(r))
	}
	return b.String()
}

func SearchLine(r search.Summary) string {
	parts := []string{format.Text(r.Chipset), format.Text(r.RAM), format.WithUnit(r.BatteryCapacity, "mAh")}
	return primaryStyle.Render(r.BrandName+" "+r.Name) + "  " +
		format.RupiahOrEmpty(r.PriceMin) + "  " +
		mutedStyle.Render(strings.Join(parts, " · "))
}

// ImportSummary writes the counts followed by every failed row.
func ImportSummary(w io.Writer, res importer.Result) {
	if res.Failed == 0 {
		Success(w, "%d HP berhasil diimport", res.Success)
		return
	}
	Warning(w, "%d berhasil, %d gagal", res.Success, res.Failed)
	for _, e := range res.Errors {
		Error(w, "%s", e)
	}
}
