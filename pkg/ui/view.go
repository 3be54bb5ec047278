package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kintrack/pkg/theme"
)

// View renders the whole interface. Everything below the header is a pure
// function of the model: the rows were already computed by refresh, so
// drawing the same state twice yields the same screen.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.confirm != nil {
		return m.placeOverlay(m.buildConfirm())
	}
	if m.menu != nil {
		return m.placeOverlay(m.buildThemeMenu())
	}

	sections := []string{
		m.buildHeader(),
		m.buildFormRow(),
		m.buildControlBar(),
		m.buildCounter(),
		m.table.View(),
		m.buildDetailPane(),
		m.buildStatusBar(),
	}

	view := strings.Join(sections, "\n")

	if m.toast != nil {
		view += "\n" + m.buildToast()
	}
	return view
}

func (m *model) buildHeader() string {
	title := m.styles.Title.Render("Family Members")
	mode := m.themes.Mode()
	badge := m.styles.Muted.Render(fmt.Sprintf("%s %s", mode.Icon(), mode.Label()))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(badge) - 2
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + badge
}

// buildFormRow renders the three inputs and the submit button. The button
// label flips to Update Member while an edit is in progress and reverts
// once it commits.
func (m *model) buildFormRow() string {
	inputs := []struct {
		zone focusZone
		view string
	}{
		{focusName, m.nameInput.View()},
		{focusDOB, m.dobInput.View()},
		{focusRelationship, m.relationshipInput.View()},
	}

	parts := make([]string, 0, len(inputs)+1)
	for _, in := range inputs {
		box := m.styles.InputBox
		if m.focus == in.zone {
			box = m.styles.InputBoxFocused
		}
		parts = append(parts, box.Render(in.view))
	}

	label := "Add Member"
	if _, editing := m.list.Editing(); editing {
		label = "Update Member"
	}
	button := m.styles.Submit
	if m.focus == focusSubmit {
		button = m.styles.SubmitFocused
	}
	parts = append(parts, button.Render(label))

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *model) buildControlBar() string {
	searchBox := m.styles.InputBox
	if m.focus == focusSearch {
		searchBox = m.styles.InputBoxFocused
	}

	sortStyle := m.styles.Selector
	filterStyle := m.styles.Selector
	if m.focus == focusTable {
		sortStyle = m.styles.SelectorFocused
		filterStyle = m.styles.SelectorFocused
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		searchBox.Render(m.searchInput.View()),
		sortStyle.Render(fmt.Sprintf("Sort: %s", sortOptions[m.sortIndex].label)),
		filterStyle.Render(fmt.Sprintf("Filter: %s", filterOptions[m.filterIndex].label)),
	)
}

// buildCounter shows the unfiltered list size, not the visible row count.
func (m *model) buildCounter() string {
	counter := m.styles.Counter.Render(fmt.Sprintf("Total members: %d", m.list.Len()))
	if len(m.visible) != m.list.Len() {
		counter += m.styles.Muted.Render(fmt.Sprintf("  (showing %d)", len(m.visible)))
	}
	return counter
}

// buildDetailPane renders the seven-unit age breakdown for the selected
// row, the terminal stand-in for the nested list each table row carried.
func (m *model) buildDetailPane() string {
	row, ok := m.selectedRow()
	if !ok {
		return m.styles.Muted.Render("  No members to show.")
	}

	var b strings.Builder
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%s (%s)", row.Name, row.Relationship)))
	b.WriteString("\n")
	for _, unit := range row.Units {
		b.WriteString(m.styles.Muted.Render("  • " + unit))
		b.WriteString("\n")
	}
	return m.styles.DetailPane.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *model) buildStatusBar() string {
	hints := "Tab to move focus • Enter to submit • e edit • d delete • s share • t theme • o sort • f filter • q quit"
	if m.focus != focusTable {
		hints = "Tab to move focus • Enter to submit • Esc to cancel edit • Ctrl+C to quit"
	}
	return m.styles.StatusBar.Render(hints)
}

func (m *model) buildToast() string {
	style := m.styles.Toast
	if m.toast.isError {
		style = m.styles.ToastError
	}
	text := m.toast.message
	if m.toast.details != "" {
		text += "\n" + m.styles.Muted.Render(m.toast.details)
	}
	return style.Render(text)
}

// buildConfirm renders the delete confirmation dialog.
func (m *model) buildConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.OverlayTitle.Render("Delete member"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render(
		fmt.Sprintf("Are you sure you want to delete %s?", m.confirm.name)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("y to delete • n to keep"))
	return m.styles.OverlayBox.Render(b.String())
}

// buildThemeMenu renders the theme dropdown.
func (m *model) buildThemeMenu() string {
	var b strings.Builder
	b.WriteString(m.styles.OverlayTitle.Render("Theme"))
	b.WriteString("\n\n")
	for i, mode := range theme.Modes {
		item := m.styles.MenuItem
		if i == m.menu.selected {
			item = m.styles.MenuItemSelected
		}
		b.WriteString(item.Render(fmt.Sprintf("%s %s", mode.Icon(), mode.Label())))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Enter to select • any other key to close"))
	return m.styles.OverlayBox.Render(b.String())
}

// placeOverlay centers an overlay box in the window.
func (m *model) placeOverlay(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func ageLabel(age int) string {
	return fmt.Sprintf("%d years", age)
}
