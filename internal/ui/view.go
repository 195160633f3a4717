package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateEntry:
		return m.viewEntry()
	case StateSheet:
		return m.viewSheet()
	case StateEdit:
		return m.viewEdit()
	case StateError:
		return m.viewError()
	}
	return ""
}

// viewHeader renders the title and the active modifiers
func (m Model) viewHeader() []string {
	return []string{
		titleStyle.Render("⌖ " + m.title),
		mutedStyle.Render(m.mods.Summary()),
		"",
	}
}

// viewStatus renders the last status line, or the export spinner
func (m Model) viewStatus() string {
	if m.exporting {
		return fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Exporting sheet..."))
	}
	if m.status == "" {
		return ""
	}
	return successStyle.Render("✓ " + m.status)
}

// viewEntry renders the leg entry form above the sheet
func (m Model) viewEntry() string {
	sections := m.viewHeader()

	var fields []string
	for i := range m.inputs {
		fields = append(fields, m.inputs[i].View())
	}
	form := activePaneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, fields...))
	sections = append(sections, form)

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render("✗ "+m.err.Error()))
	}
	if s := m.viewStatus(); s != "" {
		sections = append(sections, "", s)
	}

	sections = append(sections, "", labelStyle.Render(fmt.Sprintf("Sheet (%d legs)", m.sheet.Len())))
	sections = append(sections, m.table.View())

	help := helpStyle.Render("Enter: Add leg • Tab/↑/↓: Next field • Esc: Browse sheet • Ctrl+C: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewSheet renders the sheet table with its commands
func (m Model) viewSheet() string {
	sections := m.viewHeader()

	if m.sheet.Len() == 0 {
		sections = append(sections, paneStyle.Render(mutedStyle.Render("No legs yet. Press N to add one.")))
	} else {
		sections = append(sections, paneStyle.Render(m.table.View()))
	}

	if s := m.viewStatus(); s != "" {
		sections = append(sections, s)
	}

	help := helpStyle.Render(
		"↑/↓: Select • N/Esc: New leg • X: Remove • Z: Remove last • O: Going • R: Remarks\n" +
			"A: Angle • M: Distance • T: Time • C: Bearing mode • 1/2/3: Time of day/Terrain/Tactical\n" +
			"V: GMA • W: GMA east/west • P: Print • E: Export • Q: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewEdit renders the single-value edit prompt
func (m Model) viewEdit() string {
	sections := m.viewHeader()

	label := fmt.Sprintf("Editing %s", m.editTarget)
	if m.editTarget != EditGMA {
		label += fmt.Sprintf(" for serial %d", m.editSerial)
	}
	sections = append(sections, labelStyle.Render(label))
	sections = append(sections, activePaneStyle.Render(m.editInput.View()))

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render("✗ "+m.err.Error()))
	}

	help := helpStyle.Render("Enter: Save • Esc: Cancel • Ctrl+C: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := lipgloss.NewStyle().
		Foreground(colorDanger).
		Bold(true).
		Render("✗ Error")

	var errorMsg string
	if m.err != nil {
		errorMsg = m.err.Error()
	} else {
		errorMsg = "An unknown error occurred"
	}

	help := helpStyle.Render("Press any key to return to the sheet • Q: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, "")
	sections = append(sections, errorMsg)
	sections = append(sections, "")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
