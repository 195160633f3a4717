// Package render formats navigation sheet rows for printing and for the
// interactive table.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/units"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// Headers returns the column titles, labelled with the current units.
func Headers(mods models.Modifiers) []string {
	return []string{
		"Serial",
		"Grid From",
		"Grid To",
		fmt.Sprintf("Bearing (%s)", mods.AngleUnit),
		fmt.Sprintf("Distance (%s)", mods.DistanceUnit.Abbrev()),
		fmt.Sprintf("Time (%s)", mods.TimeFormat),
		"Going",
		"Remarks",
	}
}

// Cells formats one row in Headers order.
func Cells(row models.Row, mods models.Modifiers) []string {
	return []string{
		strconv.Itoa(row.Serial),
		row.GridFrom,
		row.GridTo,
		strconv.FormatFloat(row.Bearing, 'f', -1, 64),
		units.FormatDistance(row.Distance, mods.DistanceUnit),
		row.Time,
		row.Going,
		row.Remarks,
	}
}

// Sheet renders a printable sheet: title, modifiers line, then a
// bordered table of rows.
func Sheet(title string, mods models.Modifiers, rows []models.Row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Headers(mods)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, row := range rows {
		t.Row(Cells(row, mods)...)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(mods.Summary())
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString("No legs.\n")
	}
	return b.String()
}

// WriteFile renders the sheet to path, creating its directory.
func WriteFile(path, title string, mods models.Modifiers, rows []models.Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating print directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Sheet(title, mods, rows)), 0644); err != nil {
		return fmt.Errorf("writing sheet: %w", err)
	}
	return nil
}
