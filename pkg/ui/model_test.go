package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kintrack/pkg/roster"
	"kintrack/pkg/storage"
	"kintrack/pkg/theme"
)

func newTestModel(t *testing.T) (*model, *roster.List) {
	t.Helper()

	store := storage.NewMemStore()
	list := roster.NewList(store)
	themes := theme.NewManager(store)

	m, ok := New(list, themes, zap.NewNop()).(*model)
	require.True(t, ok)

	m.ready = true
	m.width = 120
	m.height = 40
	m.now = func() time.Time {
		return time.Date(2025, time.August, 29, 12, 0, 0, 0, time.UTC)
	}
	return m, list
}

func fillForm(m *model, name, dob, relationship string) {
	m.nameInput.SetValue(name)
	m.dobInput.SetValue(dob)
	m.relationshipInput.SetValue(relationship)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestSubmitAddsMemberAndClearsForm(t *testing.T) {
	m, list := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()

	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Sam", list.Members()[0].Name)

	// Form cleared, table redrawn
	assert.Empty(t, m.nameInput.Value())
	assert.Empty(t, m.dobInput.Value())
	assert.Empty(t, m.relationshipInput.Value())
	require.Len(t, m.visible, 1)
	assert.Equal(t, 25, m.visible[0].Age)
	assert.Equal(t, "25 -------- years", m.visible[0].Units[0])
}

func TestSubmitInvalidLeavesFormAsIs(t *testing.T) {
	m, list := newTestModel(t)

	fillForm(m, "", "2000-06-15", "Sibling")
	m.submit()

	assert.Equal(t, 0, list.Len())
	// Silent abort: the typed values stay in place, no toast
	assert.Equal(t, "2000-06-15", m.dobInput.Value())
	assert.Nil(t, m.toast)
}

func TestSubmitButtonLabelFollowsEditState(t *testing.T) {
	m, list := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()

	assert.Contains(t, m.buildFormRow(), "Add Member")

	m.setFocus(focusTable)
	m.startEdit()
	_, editing := list.Editing()
	require.True(t, editing)
	assert.Contains(t, m.buildFormRow(), "Update Member")

	// Commit the rename; the label reverts and the list stays length 1
	m.nameInput.SetValue("Samuel")
	m.submit()

	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Samuel", list.Members()[0].Name)
	assert.Contains(t, m.buildFormRow(), "Add Member")
}

func TestStartEditPopulatesForm(t *testing.T) {
	m, _ := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()

	m.setFocus(focusTable)
	m.startEdit()

	assert.Equal(t, "Sam", m.nameInput.Value())
	assert.Equal(t, "2000-06-15", m.dobInput.Value())
	assert.Equal(t, "Sibling", m.relationshipInput.Value())
	assert.Equal(t, focusName, m.focus)
}

func TestEscCancelsEdit(t *testing.T) {
	m, list := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()
	m.setFocus(focusTable)
	m.startEdit()

	m.Update(keyMsg("esc"))

	_, editing := list.Editing()
	assert.False(t, editing)
	assert.Equal(t, "Sam", list.Members()[0].Name)
	assert.Empty(t, m.nameInput.Value())
}

func TestDeleteConfirmDeclined(t *testing.T) {
	m, list := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()

	m.setFocus(focusTable)
	m.Update(keyMsg("d"))
	require.NotNil(t, m.confirm)

	m.Update(keyMsg("n"))
	assert.Nil(t, m.confirm)
	assert.Equal(t, 1, list.Len(), "declined delete must leave the list unchanged")
}

func TestDeleteConfirmAccepted(t *testing.T) {
	m, list := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()
	fillForm(m, "Kim", "1990-01-01", "Parent")
	m.submit()

	// Target the second row
	m.setFocus(focusTable)
	m.table.SetCursor(1)
	m.Update(keyMsg("d"))
	require.NotNil(t, m.confirm)
	assert.Equal(t, "Kim", m.confirm.name)

	m.Update(keyMsg("y"))
	assert.Nil(t, m.confirm)
	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Sam", list.Members()[0].Name)
}

func TestDeleteBindingSurvivesSorting(t *testing.T) {
	m, list := newTestModel(t)

	fillForm(m, "Zed", "1970-01-01", "Grandparent")
	m.submit()
	fillForm(m, "Amy", "2010-01-01", "Child")
	m.submit()

	// Sort by name puts Amy first even though Zed was inserted first
	m.setFocus(focusTable)
	m.Update(keyMsg("o"))
	require.Equal(t, "Amy", m.visible[0].Name)

	m.table.SetCursor(0)
	m.Update(keyMsg("d"))
	m.Update(keyMsg("y"))

	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Zed", list.Members()[0].Name, "the binding must target Amy, not position zero of the stored list")
}

func TestSearchRecomputesRows(t *testing.T) {
	m, _ := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()
	fillForm(m, "Kim", "1990-01-01", "Parent")
	m.submit()

	m.setFocus(focusSearch)
	m.Update(keyMsg("k"))

	require.Len(t, m.visible, 1)
	assert.Equal(t, "Kim", m.visible[0].Name)

	// The counter keeps reporting the unfiltered size
	assert.Contains(t, m.buildCounter(), "Total members: 2")
}

func TestFilterCycle(t *testing.T) {
	m, _ := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()
	fillForm(m, "Amy", "2015-01-01", "Child")
	m.submit()

	m.setFocus(focusTable)
	// Cycle to the "0-12" preset
	m.Update(keyMsg("f"))

	require.Len(t, m.visible, 1)
	assert.Equal(t, "Amy", m.visible[0].Name)
}

func TestThemeMenuSelection(t *testing.T) {
	m, _ := newTestModel(t)

	m.setFocus(focusTable)
	m.Update(keyMsg("t"))
	require.NotNil(t, m.menu)

	// system -> light -> dark
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(keyMsg("enter"))

	assert.Nil(t, m.menu)
	assert.Equal(t, theme.ModeDark, m.themes.Mode())
	assert.True(t, m.styles.Theme.IsDark)
}

func TestThemeMenuClosesOnOtherKey(t *testing.T) {
	m, _ := newTestModel(t)

	m.setFocus(focusTable)
	m.Update(keyMsg("t"))
	require.NotNil(t, m.menu)

	before := m.themes.Mode()
	m.Update(keyMsg("x"))

	assert.Nil(t, m.menu)
	assert.Equal(t, before, m.themes.Mode())
}

func TestViewIsStableForUnchangedState(t *testing.T) {
	m, _ := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()
	fillForm(m, "Kim", "1990-01-01", "Parent")
	m.submit()

	m.refresh()
	first := m.View()
	m.refresh()
	second := m.View()

	assert.Equal(t, first, second)
}

func TestShareTextComesFromRenderedRows(t *testing.T) {
	m, _ := newTestModel(t)

	fillForm(m, "Sam", "2000-06-15", "Sibling")
	m.submit()
	fillForm(m, "Kim", "1990-01-01", "Parent")
	m.submit()

	// Narrow the view, then confirm only the drawn rows are exported
	m.searchInput.SetValue("sam")
	m.refresh()
	require.Len(t, m.visible, 1)

	rows := m.visible
	assert.Equal(t, "Sam", rows[0].Name)
	assert.Equal(t, "6/15/2000", rows[0].DOB)
}
