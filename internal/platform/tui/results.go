package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wallrow/internal/storage"
)

const maxResults = 100

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Quit}}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "games/strategies"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel shows recent games or per-strategy totals from the ledger.
type ResultsModel struct {
	results   []storage.Result
	stats     []storage.StrategyStats
	showStats bool
	table     table.Model
	help      help.Model
	keys      ResultsKeyMap
	height    int
	quitting  bool
}

// NewResultsModel loads the ledger into a table.
func NewResultsModel(store *storage.Store, showStats bool) (ResultsModel, error) {
	results, err := store.RecentResults(maxResults)
	if err != nil {
		return ResultsModel{}, err
	}
	stats, err := store.StrategyStats()
	if err != nil {
		return ResultsModel{}, err
	}

	m := ResultsModel{
		results:   results,
		stats:     stats,
		showStats: showStats,
		help:      help.New(),
		keys:      DefaultResultsKeyMap(),
		height:    20,
	}
	m.table = m.createTable()
	return m, nil
}

// ResultColumns returns the table columns for recent games.
func ResultColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Preset", Width: 8},
		{Title: "Board", Width: 9},
		{Title: "X", Width: 10},
		{Title: "O", Width: 10},
		{Title: "Outcome", Width: 16},
		{Title: "Moves", Width: 5},
	}
}

// ResultRow formats one result for ResultColumns.
func ResultRow(r storage.Result) table.Row {
	outcome := r.Reason
	switch {
	case r.Offender != "":
		outcome = fmt.Sprintf("%s DQ (%s)", r.Offender, r.DQ)
	case r.Winner != "":
		outcome = r.Winner + " wins"
	}
	return table.Row{
		r.CreatedAt.Format("Jan 02 15:04"),
		r.Preset,
		fmt.Sprintf("%dx%d/%d", r.Rows, r.Cols, r.WinLen),
		r.PlayerX,
		r.PlayerO,
		outcome,
		strconv.Itoa(r.Moves),
	}
}

// StatsColumns returns the table columns for strategy totals.
func StatsColumns() []table.Column {
	return []table.Column{
		{Title: "Strategy", Width: 12},
		{Title: "Games", Width: 6},
		{Title: "Wins", Width: 6},
		{Title: "Losses", Width: 6},
		{Title: "Draws", Width: 6},
		{Title: "DQs", Width: 6},
	}
}

// StatsRow formats one strategy total for StatsColumns.
func StatsRow(s storage.StrategyStats) table.Row {
	return table.Row{
		s.Strategy,
		strconv.Itoa(s.Games),
		strconv.Itoa(s.Wins),
		strconv.Itoa(s.Losses),
		strconv.Itoa(s.Draws),
		strconv.Itoa(s.DQs),
	}
}

// createTable builds the table for the current view.
func (m *ResultsModel) createTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)
	if m.showStats {
		columns = StatsColumns()
		for _, s := range m.stats {
			rows = append(rows, StatsRow(s))
		}
	} else {
		columns = ResultColumns()
		for _, r := range m.results {
			rows = append(rows, ResultRow(r))
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			m.showStats = !m.showStats
			m.table = m.createTable()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "RECENT GAMES"
	if m.showStats {
		title = "STRATEGIES"
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No games recorded yet.")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// ShowingStats reports whether strategy totals are on screen.
func (m ResultsModel) ShowingStats() bool { return m.showStats }

// RunResults runs the results screen.
func RunResults(store *storage.Store, showStats bool) error {
	model, err := NewResultsModel(store, showStats)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
