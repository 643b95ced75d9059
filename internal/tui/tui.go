// Package tui provides a Bubble Tea terminal user interface for conception-songs.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/conception-songs/internal/billboard"
	"github.com/handiism/conception-songs/internal/clock"
	"github.com/handiism/conception-songs/internal/config"
	"github.com/handiism/conception-songs/internal/http"
	"github.com/handiism/conception-songs/internal/model"
	"github.com/handiism/conception-songs/internal/report"
	"github.com/handiism/conception-songs/internal/search"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateFetching
	StateResults
	StateError
)

const (
	fieldDate = iota
	fieldKey
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   search.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	progress progress.Model
	results  table.Model
	settings *config.Settings
	clock    clock.Clock
	getter   billboard.Getter
	logs     []LogEntry
	report   *model.Report
	err      error

	// Fetch context
	ctx    context.Context
	cancel context.CancelFunc

	// Progress events from the running lookup
	events <-chan search.ProgressEvent

	// lookup numbers each started lookup; messages from older ones are dropped
	lookup int

	page       int
	totalPages int

	width  int
	height int
}

// NewModel creates a new TUI model. A nil getter selects an internal/http
// client built from settings.
func NewModel(settings *config.Settings, clk clock.Clock, getter billboard.Getter) Model {
	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.Prompt = "Birth date: "
	date.CharLimit = 10
	date.Width = 12
	date.Focus()

	key := textinput.New()
	key.Placeholder = "Billboard API key"
	key.Prompt = "API key:    "
	key.EchoMode = textinput.EchoPassword
	key.EchoCharacter = '•'
	key.CharLimit = 200
	key.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	if getter == nil {
		getter = http.NewClient(settings.Timeout, settings.UserAgent)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateInput,
		inputs:   []textinput.Model{date, key},
		spinner:  sp,
		progress: prog,
		results:  newResultsTable(nil, 15),
		settings: settings,
		clock:    clk,
		getter:   getter,
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func newResultsTable(rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Song", Width: 32},
			{Title: "Artist", Width: 28},
			{Title: "Distribution", Width: 16},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1D1D1D")).
		Background(lipgloss.Color("#F8B500"))
	t.SetStyles(styles)

	return t
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every lookup progress event.
	ProgressMsg struct {
		Lookup int
		Event  search.ProgressEvent
	}

	// FetchDoneMsg is sent when the lookup finishes.
	FetchDoneMsg struct {
		Lookup int
		Report *model.Report
		Err    error
	}

	// progressClosedMsg is sent when the event channel is drained.
	progressClosedMsg struct {
		lookup int
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		if msg.Height > 14 {
			m.results.SetHeight(msg.Height - 12)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StateFetching:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
				return m, nil
			}

		case "tab", "shift+tab", "up", "down":
			if m.state == StateInput {
				return m, m.cycleFocus()
			}

		case "enter":
			if m.state == StateInput {
				return m.submit()
			}

		case "q":
			if m.state == StateResults || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateResults || m.state == StateError {
				return m.reset()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Lookup != m.lookup {
			return m, nil
		}
		if msg.Event.Page > 0 {
			m.page = msg.Event.Page
			m.totalPages = msg.Event.TotalPages
			cmds = append(cmds, m.progress.SetPercent(pagePercent(m.page, m.totalPages)))
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 8 logs
		if len(m.logs) > 8 {
			m.logs = m.logs[len(m.logs)-8:]
		}
		cmds = append(cmds, waitForProgress(m.events, m.lookup))

	case progressClosedMsg:
		if msg.lookup == m.lookup {
			m.events = nil
		}

	case FetchDoneMsg:
		if msg.Lookup != m.lookup || m.state != StateFetching {
			// Result of a lookup the user already cancelled.
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateResults
			m.report = msg.Report
			m.results.SetRows(songRows(msg.Report.Songs))
			m.results.GotoTop()
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	switch m.state {
	case StateInput:
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	case StateResults:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) cycleFocus() tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// submit validates the inputs and starts the lookup.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if _, err := model.ParseBirthDate(m.dateValue(), m.clock.Now()); err != nil {
		if m.focus != fieldDate {
			return m, m.cycleFocus()
		}
		return m, nil
	}
	if m.keyValue() == "" {
		if m.focus != fieldKey {
			return m, m.cycleFocus()
		}
		return m, nil
	}

	events := make(chan search.ProgressEvent, 16)
	m.events = events
	m.lookup++
	m.state = StateFetching
	m.logs = nil
	m.page, m.totalPages = 0, 0

	return m, tea.Batch(m.startLookup(events), waitForProgress(events, m.lookup), m.spinner.Tick, m.progress.SetPercent(0))
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.state = StateInput
	m.logs = nil
	m.report = nil
	m.err = nil
	m.events = nil
	m.page, m.totalPages = 0, 0
	m.results.SetRows(nil)
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.inputs[fieldDate].SetValue("")
	m.inputs[m.focus].Blur()
	m.focus = fieldDate
	return m, m.inputs[fieldDate].Focus()
}

func (m Model) dateValue() string {
	return strings.TrimSpace(m.inputs[fieldDate].Value())
}

func (m Model) keyValue() string {
	return strings.TrimSpace(m.inputs[fieldKey].Value())
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ Conception Songs"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("The Billboard Hot 100 around your estimated conception date"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateFetching:
		b.WriteString(m.viewFetching())
	case StateResults:
		b.WriteString(m.viewResults())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if date := m.dateValue(); date != "" {
		birth, err := model.ParseBirthDate(date, m.clock.Now())
		if err != nil {
			b.WriteString(warningStyle.Render("! " + err.Error()))
		} else {
			conception := model.ConceptionDate(birth)
			b.WriteString(infoStyle.Render(fmt.Sprintf("Conception date %s, charts %s",
				conception.Format(model.DateLayout), model.NewWindow(conception))))
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("Chart %d • %d per page • %.1f calls/s",
		m.settings.ChartID, m.settings.PageSize, m.settings.CallsPerSecond)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching chart pages..."))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(pagePercent(m.page, m.totalPages)))
	b.WriteString("\n")
	if m.totalPages > 0 {
		b.WriteString(infoStyle.Render(fmt.Sprintf("Pages: %d/%d", m.page, m.totalPages)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewResults() string {
	var b strings.Builder

	rep := m.report
	b.WriteString(boxStyle.Render(fmt.Sprintf(
		"Birth date:      %s\nConception date: %s\nChart window:    %s",
		rep.BirthDate.Format(model.DateLayout),
		rep.ConceptionDate.Format(model.DateLayout),
		rep.Window,
	)))
	b.WriteString("\n")

	if len(rep.Songs) == 0 {
		b.WriteString(warningStyle.Render("No chart entries found for this window."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(successStyle.Render(fmt.Sprintf("%d song(s) from %d page(s):", len(rep.Songs), rep.Pages)))
	b.WriteString("\n")
	b.WriteString(m.results.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case search.LevelError:
			style = errorStyle
			prefix = "✗"
		case search.LevelWarning:
			style = warningStyle
			prefix = "!"
		case search.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case search.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: search • tab: next field • esc: quit"
	case StateFetching:
		return "esc: cancel"
	case StateResults:
		return "↑/↓: scroll • r: new search • q: quit"
	case StateError:
		return "r: new search • q: quit"
	}
	return ""
}

// startLookup runs the lookup in the background. Progress events are
// forwarded on events, which is closed when the lookup returns.
func (m Model) startLookup(events chan<- search.ProgressEvent) tea.Cmd {
	settings := *m.settings
	settings.APIKey = m.keyValue()
	date := m.dateValue()
	ctx, clk, getter, lookup := m.ctx, m.clock, m.getter, m.lookup

	return func() tea.Msg {
		defer close(events)

		manager := search.NewManager(&settings, getter, clk, func(event search.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})

		rep, err := manager.Run(ctx, date)
		return FetchDoneMsg{Lookup: lookup, Report: rep, Err: err}
	}
}

// waitForProgress returns a command that delivers the next progress event
// of the given lookup.
func waitForProgress(events <-chan search.ProgressEvent, lookup int) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return progressClosedMsg{lookup: lookup}
		}
		return ProgressMsg{Lookup: lookup, Event: event}
	}
}

func songRows(songs []model.ChartEntry) []table.Row {
	rows := make([]table.Row, 0, len(songs))
	for _, song := range songs {
		rows = append(rows, table.Row{
			strconv.Itoa(song.Rank),
			song.Title,
			song.Artist,
			song.DistributionOr(report.MissingDistribution),
		})
	}
	return rows
}

func pagePercent(page, total int) float64 {
	if total <= 0 {
		return 0
	}
	return min(float64(page)/float64(total), 1)
}

// Run starts the TUI application. Nil settings select the defaults.
func Run(settings *config.Settings) error {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	p := tea.NewProgram(NewModel(settings, clock.Real(), nil), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
