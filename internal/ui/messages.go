package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/navdata-terminal/internal/database"
	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/render"
	"github.com/ngmaloney/navdata-terminal/internal/routeshape"
)

// Message types for async operations

// exportDoneMsg is sent when the sqlite and shapefile exports finish
type exportDoneMsg struct {
	sheetID   int64
	dbPath    string
	shapePath string
	legs      int
}

// printDoneMsg is sent when the printable sheet has been written
type printDoneMsg struct {
	path string
}

// errMsg reports a failed print or export
type errMsg struct {
	err error
}

// exportSheet writes rows to the sqlite archive and the route shapefile
// in the background.
func exportSheet(repo *database.Repository, shapeBase, title string, rows []models.Row, mods models.Modifiers) tea.Cmd {
	return func() tea.Msg {
		id, err := repo.SaveSheet(title, mods, rows)
		if err != nil {
			return errMsg{err: fmt.Errorf("exporting to database: %w", err)}
		}
		shapePath, err := routeshape.Export(shapeBase, rows)
		if err != nil {
			return errMsg{err: fmt.Errorf("exporting shapefile: %w", err)}
		}
		return exportDoneMsg{
			sheetID:   id,
			dbPath:    repo.Path(),
			shapePath: shapePath,
			legs:      len(rows),
		}
	}
}

// printSheet writes the printable sheet to path
func printSheet(path, title string, rows []models.Row, mods models.Modifiers) tea.Cmd {
	return func() tea.Msg {
		if err := render.WriteFile(path, title, mods, rows); err != nil {
			return errMsg{err: fmt.Errorf("printing sheet: %w", err)}
		}
		return printDoneMsg{path: path}
	}
}
