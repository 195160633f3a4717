package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/navdata-terminal/internal/config"
	"github.com/ngmaloney/navdata-terminal/internal/database"
	"github.com/ngmaloney/navdata-terminal/internal/logging"
	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/navdata"
	"github.com/ngmaloney/navdata-terminal/internal/render"
)

// AppState represents the current state of the application
type AppState int

const (
	StateEntry AppState = iota // Entering a new leg
	StateSheet                 // Browsing the sheet
	StateEdit                  // Editing one value of the selected row
	StateError                 // Error state
)

// entry form fields, in tab order
const (
	inputFrom = iota
	inputTo
	inputGoing
	inputRemarks
	numInputs
)

// EditTarget is what StateEdit changes.
type EditTarget int

const (
	EditGoing EditTarget = iota
	EditRemarks
	EditGMA
)

func (e EditTarget) String() string {
	switch e {
	case EditRemarks:
		return "Remarks"
	case EditGMA:
		return "GMA"
	}
	return "Going"
}

// Options configures a new Model.
type Options struct {
	Title     string
	Sheet     *navdata.Sheet // nil starts an empty sheet
	Modifiers models.Modifiers
	Export    config.ExportConfig
	Logger    *logging.Logger
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error
	status string

	title  string
	sheet  *navdata.Sheet
	mods   models.Modifiers
	export config.ExportConfig
	repo   *database.Repository
	log    *logging.Logger

	// Entry form
	inputs     []textinput.Model
	focusIndex int

	// Sheet
	table table.Model

	// Edit
	editInput  textinput.Model
	editTarget EditTarget
	editSerial int

	spinner   spinner.Model
	exporting bool
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Sheet == nil {
		opts.Sheet = navdata.NewSheet()
	}
	if opts.Title == "" {
		opts.Title = "Navigation Data Sheet"
	}

	inputs := make([]textinput.Model, numInputs)
	for i := range inputs {
		ti := textinput.New()
		ti.Width = 24
		switch i {
		case inputFrom:
			ti.Placeholder = "321456"
			ti.CharLimit = 12
			ti.Prompt = "From:    "
		case inputTo:
			ti.Placeholder = "312465"
			ti.CharLimit = 12
			ti.Prompt = "To:      "
		case inputGoing:
			ti.Placeholder = "open field"
			ti.CharLimit = 80
			ti.Prompt = "Going:   "
		case inputRemarks:
			ti.Placeholder = "RV at bridge"
			ti.CharLimit = 160
			ti.Prompt = "Remarks: "
		}
		inputs[i] = ti
	}
	inputs[inputFrom].Focus()

	edit := textinput.New()
	edit.CharLimit = 160
	edit.Width = 40

	t := table.New(
		table.WithColumns(columns(opts.Modifiers)),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	m := Model{
		state:     StateEntry,
		title:     opts.Title,
		sheet:     opts.Sheet,
		mods:      opts.Modifiers,
		export:    opts.Export,
		repo:      database.NewRepository(opts.Export.DBPath()),
		log:       opts.Logger,
		inputs:    inputs,
		table:     t,
		editInput: edit,
		spinner:   s,
	}
	m.refreshTable()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// columns sizes the sheet table for the current units.
func columns(mods models.Modifiers) []table.Column {
	widths := []int{6, 12, 12, 16, 15, 20, 20, 24}
	headers := render.Headers(mods)
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	return cols
}

// refreshTable reloads the table from the sheet, keeping the cursor in
// range.
func (m *Model) refreshTable() {
	rows := m.sheet.Rows()
	tr := make([]table.Row, len(rows))
	for i, row := range rows {
		tr[i] = render.Cells(row, m.mods)
	}
	m.table.SetColumns(columns(m.mods))
	m.table.SetRows(tr)
	if len(tr) > 0 && (m.table.Cursor() < 0 || m.table.Cursor() >= len(tr)) {
		m.table.SetCursor(m.table.Cursor())
	}
}

// selectedSerial is the serial under the table cursor, or 0.
func (m Model) selectedSerial() int {
	row := m.table.SelectedRow()
	if row == nil {
		return 0
	}
	serial, err := strconv.Atoi(row[0])
	if err != nil {
		return 0
	}
	return serial
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 14; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.exporting = false
		m.log.Error("background task failed", "error", msg.err)
		m.err = msg.err
		m.state = StateError
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		m.log.Info("sheet exported",
			"sheet_id", msg.sheetID, "db", msg.dbPath, "shapefile", msg.shapePath, "legs", msg.legs)
		m.status = fmt.Sprintf("Exported %d legs to %s (sheet %d) and %s", msg.legs, msg.dbPath, msg.sheetID, msg.shapePath)
		return m, nil

	case printDoneMsg:
		m.log.Info("sheet printed", "path", msg.path)
		m.status = "Printed to " + msg.path
		return m, nil

	case spinner.TickMsg:
		if !m.exporting {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys
		if keyMsg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch m.state {
		case StateEntry:
			return m.handleEntry(keyMsg)
		case StateSheet:
			return m.handleSheet(keyMsg)
		case StateEdit:
			return m.handleEdit(keyMsg)
		case StateError:
			// Any key returns to the sheet (except quit keys)
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			m.err = nil
			m.state = StateSheet
			m.table.Focus()
			return m, nil
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateEntry:
		m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	case StateEdit:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

// handleEntry handles keyboard input on the leg entry form
func (m Model) handleEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear error when typing
	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.addLeg()

	case tea.KeyTab, tea.KeyDown:
		return m.focusInput((m.focusIndex + 1) % numInputs)

	case tea.KeyShiftTab, tea.KeyUp:
		return m.focusInput((m.focusIndex + numInputs - 1) % numInputs)

	case tea.KeyEsc:
		return m.showSheet(), nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) focusInput(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focusIndex].Blur()
	m.focusIndex = i
	return m, m.inputs[i].Focus()
}

// addLeg computes the entered leg and appends it to the sheet. On
// success the form is cleared and From is primed with the last To.
func (m Model) addLeg() (tea.Model, tea.Cmd) {
	from := strings.TrimSpace(m.inputs[inputFrom].Value())
	to := strings.TrimSpace(m.inputs[inputTo].Value())

	p, err := navdata.NewPoint(from, to, m.mods)
	if err != nil {
		m.err = err
		return m, nil
	}
	serial, err := m.sheet.Append(p)
	if err != nil {
		m.err = err
		return m, nil
	}

	var annotations []navdata.Annotation
	if v := strings.TrimSpace(m.inputs[inputGoing].Value()); v != "" {
		annotations = append(annotations, navdata.Annotation{Serial: serial, Field: navdata.Going, Text: v})
	}
	if v := strings.TrimSpace(m.inputs[inputRemarks].Value()); v != "" {
		annotations = append(annotations, navdata.Annotation{Serial: serial, Field: navdata.Remarks, Text: v})
	}
	if err := m.sheet.ApplyAnnotations(annotations); err != nil {
		m.err = err
		return m, nil
	}

	m.log.Info("leg added", "serial", serial, "from", p.From.String(), "to", p.To.String())

	m.err = nil
	m.status = fmt.Sprintf("Added serial %d", serial)
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.inputs[inputFrom].SetValue(to)
	m.refreshTable()
	m.table.GotoBottom()
	return m.focusInput(inputTo)
}

// showSheet switches to the sheet view
func (m Model) showSheet() Model {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.state = StateSheet
	m.table.Focus()
	return m
}

// showEntry switches back to the leg entry form
func (m Model) showEntry() (tea.Model, tea.Cmd) {
	m.table.Blur()
	m.state = StateEntry
	m.focusIndex = inputFrom
	if m.inputs[inputFrom].Value() != "" {
		m.focusIndex = inputTo
	}
	return m, m.inputs[m.focusIndex].Focus()
}

// handleSheet handles keyboard input while browsing the sheet
func (m Model) handleSheet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "n", "esc":
		return m.showEntry()

	case "x", "delete":
		serial := m.selectedSerial()
		if serial == 0 {
			return m, nil
		}
		if err := m.sheet.RemoveBySerial(serial); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.log.Info("leg removed", "serial", serial)
		m.status = fmt.Sprintf("Removed serial %d", serial)
		m.refreshTable()
		return m, nil

	case "z", "backspace":
		row, ok := m.sheet.RemoveLast()
		if !ok {
			m.status = "Sheet is empty"
			return m, nil
		}
		m.log.Info("leg removed", "serial", row.Serial)
		m.status = fmt.Sprintf("Removed serial %d", row.Serial)
		m.refreshTable()
		return m, nil

	case "o":
		return m.startEdit(EditGoing)
	case "r":
		return m.startEdit(EditRemarks)
	case "v":
		return m.startEdit(EditGMA)

	case "a":
		next := m.mods
		next.AngleUnit = next.AngleUnit.Next()
		next.GMA = m.mods.ConvertGMA(next.AngleUnit)
		return m.applyModifiers(next)
	case "m":
		next := m.mods
		next.DistanceUnit = next.DistanceUnit.Next()
		return m.applyModifiers(next)
	case "t":
		next := m.mods
		next.TimeFormat = next.TimeFormat.Next()
		return m.applyModifiers(next)
	case "c":
		next := m.mods
		next.BearingMode = next.BearingMode.Next()
		return m.applyModifiers(next)
	case "w":
		next := m.mods
		next.EastWest = -next.EastWest
		return m.applyModifiers(next)
	case "1":
		next := m.mods
		next.TimeOfDay = next.TimeOfDay.Next()
		return m.applyModifiers(next)
	case "2":
		next := m.mods
		next.Terrain = next.Terrain.Next()
		return m.applyModifiers(next)
	case "3":
		next := m.mods
		next.Tactical = next.Tactical.Next()
		return m.applyModifiers(next)

	case "p":
		return m, printSheet(m.export.PrintPath(), m.title, m.sheet.Rows(), m.mods)

	case "e":
		if m.exporting {
			return m, nil
		}
		m.exporting = true
		m.status = ""
		return m, tea.Batch(
			m.spinner.Tick,
			exportSheet(m.repo, m.export.ShapeBase(), m.title, m.sheet.Rows(), m.mods),
		)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyModifiers recomputes every row with next. The sheet is unchanged
// on failure.
func (m Model) applyModifiers(next models.Modifiers) (tea.Model, tea.Cmd) {
	if err := m.sheet.Reapply(next); err != nil {
		m.log.Error("reapplying modifiers", "error", err)
		m.err = err
		m.state = StateError
		return m, nil
	}
	m.mods = next
	m.log.Debug("modifiers changed", "modifiers", next.Summary())
	m.status = next.Summary()
	m.refreshTable()
	return m, nil
}

// startEdit opens the edit prompt for the selected row or the GMA
func (m Model) startEdit(target EditTarget) (tea.Model, tea.Cmd) {
	m.editTarget = target
	m.editInput.Reset()
	m.editInput.Prompt = target.String() + ": "

	switch target {
	case EditGMA:
		m.editSerial = 0
		m.editInput.SetValue(strconv.FormatFloat(m.mods.GMA, 'f', -1, 64))
	default:
		serial := m.selectedSerial()
		row, ok := m.sheet.Row(serial)
		if !ok {
			m.status = "No row selected"
			return m, nil
		}
		m.editSerial = serial
		if target == EditGoing {
			m.editInput.SetValue(row.Going)
		} else {
			m.editInput.SetValue(row.Remarks)
		}
	}

	m.err = nil
	m.table.Blur()
	m.state = StateEdit
	return m, m.editInput.Focus()
}

// handleEdit handles keyboard input in the edit prompt
func (m Model) handleEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editInput.Blur()
		m.err = nil
		return m.showSheet(), nil

	case tea.KeyEnter:
		text := strings.TrimSpace(m.editInput.Value())
		var err error
		switch m.editTarget {
		case EditGoing:
			err = m.sheet.SetGoing(m.editSerial, text)
		case EditRemarks:
			err = m.sheet.SetRemark(m.editSerial, text)
		case EditGMA:
			gma, perr := models.ParseGMA(text)
			if perr != nil {
				m.err = fmt.Errorf("GMA must be a finite number: %w", perr)
				return m, nil
			}
			next := m.mods
			next.GMA = gma
			m.editInput.Blur()
			m = m.showSheet()
			return m.applyModifiers(next)
		}
		if err != nil {
			m.err = err
			return m, nil
		}
		m.log.Info("row annotated", "serial", m.editSerial, "field", m.editTarget.String())
		m.status = fmt.Sprintf("Updated %s for serial %d", strings.ToLower(m.editTarget.String()), m.editSerial)
		m.editInput.Blur()
		m.refreshTable()
		return m.showSheet(), nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}
