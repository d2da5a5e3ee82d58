// Package tui is a terminal candidate viewer: a search box, two sort buttons
// and a table, all driven by one ViewState over a loaded collection.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/internal/domain/display"
	"github.com/okian/candidateview/internal/domain/projection"
	"github.com/okian/candidateview/internal/domain/session"
)

// FetchFunc loads the collection. It is called once on start and again on reload.
type FetchFunc func(ctx context.Context) ([]candidate.Record, error)

// LoadedMsg carries the outcome of a fetch.
type LoadedMsg struct {
	Records []candidate.Record
	Err     error
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx    context.Context
	fetch  FetchFunc
	width  int
	height int

	input   textinput.Model
	table   table.Model
	styles  Styles
	loading bool
	loadErr error

	records []candidate.Record
	rows    []display.Row
	state   session.ViewState
}

// NewModel creates a viewer that loads through fetch. The search box starts focused.
func NewModel(ctx context.Context, fetch FetchFunc) Model {
	in := textinput.New()
	in.Placeholder = "Search by name or skills"
	in.Prompt = "/ "
	in.Width = 40
	in.Focus()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Skills", Width: 40},
			{Title: "Years of Experience", Width: 20},
		}),
		table.WithHeight(15),
	)

	return Model{
		ctx:     ctx,
		fetch:   fetch,
		input:   in,
		table:   t,
		styles:  DefaultStyles(),
		loading: fetch != nil,
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load())
}

func (m Model) load() tea.Cmd {
	if m.fetch == nil {
		return nil
	}
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		records, err := fetch(ctx)
		return LoadedMsg{Records: records, Err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case LoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.records = msg.Records
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			m.state.ClearQuery()
			m.input.SetValue("")
			m.refresh()
			return m, nil
		}

		if m.input.Focused() {
			switch msg.String() {
			case "esc", "enter", "tab", "down":
				m.input.Blur()
				m.table.Focus()
				return m, nil
			}
			m.input, cmd = m.input.Update(msg)
			if v := m.input.Value(); v != m.state.Query {
				m.state.SetQuery(v)
				m.refresh()
			}
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/", "tab":
			m.table.Blur()
			return m, m.input.Focus()
		case "a":
			_ = m.state.SelectSort(projection.Ascending)
			m.refresh()
			return m, nil
		case "d":
			_ = m.state.SelectSort(projection.Descending)
			m.refresh()
			return m, nil
		case "r":
			m.loading = true
			return m, m.load()
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refresh recomputes the projection and the table rows.
func (m *Model) refresh() {
	m.rows = display.Rows(projection.Project(m.records, m.state.Query, m.state.Sort))

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{r.Name, strings.Join(r.Skills, ", "), r.Years}
	}
	m.table.SetRows(rows)
}

// SetSize updates the size.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	if w > 4 {
		m.table.SetWidth(w - 4)
	}
	if h > 12 {
		m.table.SetHeight(h - 12)
	}
}

// State returns the current view state.
func (m Model) State() session.ViewState {
	return m.state
}

// Rows returns the rows currently shown, in display order.
func (m Model) Rows() []display.Row {
	return m.rows
}

// View renders the viewer.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(" Candidate List Viewer "))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Filter by name or skills, sort by years of experience."))
	sb.WriteString("\n\n")

	inputStyle := m.styles.Input
	if m.input.Focused() {
		inputStyle = m.styles.InputFocus
	}
	sb.WriteString(inputStyle.Render(m.input.View()))
	sb.WriteString("\n")

	asc, desc := m.styles.Sort, m.styles.Sort
	switch m.state.Sort {
	case projection.Ascending:
		asc = m.styles.SortActive
	case projection.Descending:
		desc = m.styles.SortActive
	}
	sb.WriteString(asc.Render("↑ Sort (Asc)"))
	sb.WriteString("  ")
	sb.WriteString(desc.Render("↓ Sort (Desc)"))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Content.Render(m.table.View()))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(m.styles.Muted.Render("Loading candidates..."))
	case m.loadErr != nil:
		sb.WriteString(m.styles.Error.Render(fmt.Sprintf("Error fetching data: %v", m.loadErr)))
	default:
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Showing %d of %d candidates", len(m.rows), len(m.records))))
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("[esc] Table  [/] Search  [ctrl+l] Clear  [a] Asc  [d] Desc  [r] Reload  [q] Quit"))

	return sb.String()
}
