package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kintrack/pkg/roster"
	"kintrack/pkg/share"
	"kintrack/pkg/theme"
)

// focusZone identifies which control receives keystrokes.
type focusZone int

const (
	focusName focusZone = iota
	focusDOB
	focusRelationship
	focusSubmit
	focusSearch
	focusTable
	focusZoneCount
)

// selectorOption is one entry of the sort or filter selector.
type selectorOption struct {
	value string
	label string
}

var sortOptions = []selectorOption{
	{"", "unsorted"},
	{"name", "by name"},
	{"age", "by age"},
}

// filterOptions mirror the age-range select of the original form: ranges
// are encoded as "min-max" or "min-" and the empty value passes everyone.
var filterOptions = []selectorOption{
	{"", "all ages"},
	{"0-12", "0-12"},
	{"13-19", "13-19"},
	{"20-39", "20-39"},
	{"40-64", "40-64"},
	{"65-", "65+"},
}

const toastDuration = 4 * time.Second

// themeTickInterval is how often the terminal background signal is
// re-checked while the preference is "system".
const themeTickInterval = 2 * time.Second

// model is the state of the roster TUI.
type model struct {
	list   *roster.List
	themes *theme.Manager
	logger *zap.Logger

	// now is injectable so rendering is testable without the real clock
	now func() time.Time

	// Form and search controls
	nameInput         textinput.Model
	dobInput          textinput.Model
	relationshipInput textinput.Model
	searchInput       textinput.Model

	sortIndex   int
	filterIndex int

	// Table and its last draw output. The share action serializes visible
	// directly; it never re-runs the pipeline.
	table   table.Model
	visible []roster.Row

	focus focusZone

	// Overlays
	confirm *confirmDialog
	menu    *themeMenu

	toast *toastNotification

	styles Styles
	width  int
	height int
	ready  bool
}

// confirmDialog is the delete guard rail. Deletion only happens through its
// accept path.
type confirmDialog struct {
	memberID uuid.UUID
	name     string
}

// themeMenu is the open theme dropdown.
type themeMenu struct {
	selected int
}

// toastNotification is a temporary notice with a display deadline.
type toastNotification struct {
	message   string
	details   string
	isError   bool
	showUntil time.Time
}

// sharedMsg carries the result of the asynchronous share handoff.
type sharedMsg struct {
	method share.Method
	err    error
}

// tickMsg drives toast expiry and the system-theme re-derivation.
type tickMsg time.Time

// New creates the TUI model.
func New(list *roster.List, themes *theme.Manager, logger *zap.Logger) tea.Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 80
	name.Width = 24
	name.Focus()

	dob := textinput.New()
	dob.Placeholder = "YYYY-MM-DD"
	dob.CharLimit = 10
	dob.Width = 12

	relationship := textinput.New()
	relationship.Placeholder = "Relationship"
	relationship.CharLimit = 40
	relationship.Width = 18

	search := textinput.New()
	search.Placeholder = "Search by name..."
	search.CharLimit = 80
	search.Width = 30

	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithHeight(10),
	)

	m := &model{
		list:              list,
		themes:            themes,
		logger:            logger,
		now:               time.Now,
		nameInput:         name,
		dobInput:          dob,
		relationshipInput: relationship,
		searchInput:       search,
		table:             t,
		focus:             focusName,
	}
	m.applyTheme()
	m.refresh()
	return m
}

// Init starts cursor blinking and the theme/toast tick.
func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(themeTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Date of Birth", Width: 14},
		{Title: "Relationship", Width: 14},
		{Title: "Age", Width: 10},
	}
}

// applyTheme rebuilds all styles from the currently derived palette.
func (m *model) applyTheme() {
	m.styles = NewStyles(m.themes.Active())
	m.table.SetStyles(tableStyles(m.styles.Theme))
}

// query assembles the pipeline input from the current control state.
func (m *model) query() roster.Query {
	return roster.Query{
		Search: m.searchInput.Value(),
		Filter: filterOptions[m.filterIndex].value,
		Sort:   roster.ParseSortMode(sortOptions[m.sortIndex].value),
	}
}

// refresh re-runs the full search/filter/sort pipeline and redraws every
// table row. There is no incremental diffing; the visible set is recomputed
// from scratch on every relevant input event.
func (m *model) refresh() {
	m.visible = roster.Visible(m.list.Members(), m.query(), m.now())

	rows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		rows = append(rows, table.Row{r.Name, r.DOB, r.Relationship, ageLabel(r.Age)})
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// selectedRow returns the row under the table cursor.
func (m *model) selectedRow() (roster.Row, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return roster.Row{}, false
	}
	return m.visible[cursor], true
}

// showToast displays a temporary notice.
func (m *model) showToast(message, details string, isError bool) {
	m.toast = &toastNotification{
		message:   message,
		details:   details,
		isError:   isError,
		showUntil: m.now().Add(toastDuration),
	}
}
