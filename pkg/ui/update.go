package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kintrack/pkg/roster"
	"kintrack/pkg/share"
	"kintrack/pkg/theme"
)

// Update is the single event-loop handler. Every mutation of the list runs
// to completion here before the next event is processed; the only
// asynchronous operation is the share handoff, whose completion arrives
// back as a sharedMsg.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tickMsg:
		return m.handleTick()

	case sharedMsg:
		return m.handleShared(msg)

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.handleConfirmKey(msg)
		}
		if m.menu != nil {
			return m.handleMenuKey(msg)
		}
		return m.handleKey(msg)
	}

	return m.routeToFocused(msg)
}

func (m *model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	tableHeight := m.height - 18
	if tableHeight < 4 {
		tableHeight = 4
	}
	m.table.SetHeight(tableHeight)
	return m, nil
}

// handleTick expires the toast and, while the preference is "system",
// re-derives the active palette from the terminal background signal. An
// explicit light/dark preference ignores the signal entirely.
func (m *model) handleTick() (tea.Model, tea.Cmd) {
	if m.toast != nil && m.now().After(m.toast.showUntil) {
		m.toast = nil
	}
	if m.themes.Mode() == theme.ModeSystem {
		m.applyTheme()
	}
	return m, tick()
}

func (m *model) handleShared(msg sharedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("share handoff failed", zap.Error(msg.err))
		m.showToast("Sharing failed", msg.err.Error(), true)
		return m, nil
	}

	switch msg.method {
	case share.MethodShareSheet:
		m.showToast("Shared", "Roster handed to the share sheet", false)
	default:
		m.showToast("Copied to clipboard", "Roster text is ready to paste", false)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.setFocus((m.focus + 1) % focusZoneCount)
		return m, nil

	case "shift+tab":
		m.setFocus((m.focus + focusZoneCount - 1) % focusZoneCount)
		return m, nil

	case "esc":
		// Abandon an in-progress edit; the record stays as it was
		if _, editing := m.list.Editing(); editing {
			m.list.CancelEdit()
			m.resetForm()
		}
		return m, nil

	case "enter":
		switch m.focus {
		case focusName, focusDOB, focusRelationship, focusSubmit:
			m.submit()
			return m, nil
		case focusSearch:
			m.setFocus(focusTable)
			return m, nil
		}
	}

	if m.focus == focusTable {
		if handled, cmd := m.handleTableKey(msg); handled {
			return m, cmd
		}
	}

	return m.routeToFocused(msg)
}

// handleTableKey runs the single-letter actions available while the table
// has focus.
func (m *model) handleTableKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "e":
		m.startEdit()
		return true, nil
	case "d":
		if row, ok := m.selectedRow(); ok {
			m.confirm = &confirmDialog{memberID: row.ID, name: row.Name}
		}
		return true, nil
	case "s":
		return true, m.shareCmd()
	case "t":
		m.menu = &themeMenu{selected: modeIndex(m.themes.Mode())}
		return true, nil
	case "o":
		m.sortIndex = (m.sortIndex + 1) % len(sortOptions)
		m.refresh()
		return true, nil
	case "f":
		m.filterIndex = (m.filterIndex + 1) % len(filterOptions)
		m.refresh()
		return true, nil
	case "q":
		return true, tea.Quit
	}
	return false, nil
}

// handleConfirmKey drives the delete confirmation. Only an explicit accept
// mutates the list; everything else leaves it unchanged.
func (m *model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirm.memberID
		m.confirm = nil
		if err := m.list.Delete(id); err != nil {
			m.logger.Warn("delete failed", zap.Error(err))
			m.showToast("Could not delete", err.Error(), true)
			return m, nil
		}
		m.refresh()
	case "n", "esc":
		m.confirm = nil
	}
	return m, nil
}

// handleMenuKey drives the theme dropdown. Any key that is not navigation
// or selection closes the menu, the equivalent of clicking outside it.
func (m *model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menu.selected > 0 {
			m.menu.selected--
		}
	case "down", "j":
		if m.menu.selected < len(theme.Modes)-1 {
			m.menu.selected++
		}
	case "enter":
		mode := theme.Modes[m.menu.selected]
		m.menu = nil
		if err := m.themes.SetMode(mode); err != nil {
			m.logger.Warn("theme persist failed", zap.Error(err))
		}
		m.applyTheme()
	default:
		m.menu = nil
	}
	return m, nil
}

// routeToFocused forwards a message to the control that currently has
// focus. A keystroke landing in the search box recomputes the visible rows
// immediately.
func (m *model) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusDOB:
		m.dobInput, cmd = m.dobInput.Update(msg)
	case focusRelationship:
		m.relationshipInput, cmd = m.relationshipInput.Update(msg)
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.refresh()
	case focusTable:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// setFocus moves keyboard focus between zones.
func (m *model) setFocus(zone focusZone) {
	m.focus = zone

	m.nameInput.Blur()
	m.dobInput.Blur()
	m.relationshipInput.Blur()
	m.searchInput.Blur()
	m.table.Blur()

	switch zone {
	case focusName:
		m.nameInput.Focus()
	case focusDOB:
		m.dobInput.Focus()
	case focusRelationship:
		m.relationshipInput.Focus()
	case focusSearch:
		m.searchInput.Focus()
	case focusTable:
		m.table.Focus()
	}
}

// submit validates and applies the form: append on a fresh form, replace in
// place when an edit is in progress. Invalid input aborts silently with the
// form left as-is.
func (m *model) submit() {
	in := roster.Input{
		Name:         m.nameInput.Value(),
		DOB:          m.dobInput.Value(),
		Relationship: m.relationshipInput.Value(),
	}

	err := m.list.Submit(in)
	switch {
	case errors.Is(err, roster.ErrInvalid):
		// Form not yet complete; leave it untouched
		return
	case err != nil:
		m.logger.Warn("submit failed", zap.Error(err))
		m.showToast("Could not save", err.Error(), true)
		return
	}

	m.resetForm()
	m.refresh()
}

// startEdit loads the selected row's record into the form. The binding is
// the member's stable ID, so it holds regardless of filtering or sorting.
func (m *model) startEdit() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	member, err := m.list.StartEdit(row.ID)
	if err != nil {
		return
	}

	m.nameInput.SetValue(member.Name)
	m.dobInput.SetValue(member.DOB.Format("2006-01-02"))
	m.relationshipInput.SetValue(member.Relationship)
	m.setFocus(focusName)
}

// resetForm clears the inputs and returns focus to the name field.
func (m *model) resetForm() {
	m.nameInput.Reset()
	m.dobInput.Reset()
	m.relationshipInput.Reset()
	m.setFocus(focusName)
}

// shareCmd serializes the rows exactly as last drawn and hands them off in
// the background; the continuation arrives as a sharedMsg.
func (m *model) shareCmd() tea.Cmd {
	text := share.Render(m.visible)
	return func() tea.Msg {
		method, err := share.Share(text)
		return sharedMsg{method: method, err: err}
	}
}

func modeIndex(mode theme.Mode) int {
	for i, candidate := range theme.Modes {
		if candidate == mode {
			return i
		}
	}
	return 0
}
