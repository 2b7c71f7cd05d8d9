package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wallrow/internal/config"
	"github.com/vovakirdan/wallrow/internal/core"
	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/match"
	"github.com/vovakirdan/wallrow/internal/player"
	"github.com/vovakirdan/wallrow/internal/registry"
	"github.com/vovakirdan/wallrow/internal/render"
	"github.com/vovakirdan/wallrow/internal/state"
	"github.com/vovakirdan/wallrow/internal/storage"
)

// ErrInteractiveBot is returned when the bot side is configured to read
// moves from standard input, which the board already owns.
var ErrInteractiveBot = errors.New("tui: bot side cannot be an interactive strategy")

// Options configures an interactive board.
type Options struct {
	Config    config.GameConfig
	Preset    string       // Recorded with saved results
	Seed      int64        // 0 = time-based
	Human     field.Symbol // Side played from the keyboard, X when unset
	HumanName string

	// Opponent plays the other side. When nil it is created from the
	// strategy Config.Players names for that side.
	Opponent player.Player

	Store  *storage.Store // Optional result ledger
	Logger *log.Logger
}

// keyboard is the human side of the match. Its moves arrive through
// Match.Submit, so MakeMove is never consulted.
type keyboard struct {
	name string
}

func (k *keyboard) Name() string                    { return k.name }
func (k *keyboard) SetSymbol(field.Symbol)          {}
func (k *keyboard) MakeMove(state.View) field.Point { return player.NoMove }

// Model is the Bubble Tea model for one human playing against a bot.
type Model struct {
	opts     Options
	match    *match.Match
	seed     int64 // Seed of the current round
	round    int
	cursor   field.Point
	keys     KeyMap
	help     help.Model
	message  string
	saved    bool
	quitting bool
	width    int
	height   int
	logger   *log.Logger
}

// NewModel validates opts and sets up the first round.
func NewModel(opts Options) (Model, error) {
	if !opts.Human.IsPlayer() {
		opts.Human = field.PlayerX
	}
	if opts.HumanName == "" {
		opts.HumanName = "human"
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: opts.Logger,
	}
	if err := m.newRound(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// newRound builds a fresh match. Each round gets its own seed so a saved
// result can be replayed from it.
func (m *Model) newRound() error {
	m.seed = m.opts.Seed + int64(m.round)

	s, err := m.opts.Config.NewState(m.seed)
	if err != nil {
		return err
	}

	bot := m.opts.Opponent
	if bot == nil {
		id := m.opts.Config.Players.O
		if m.opts.Human == field.PlayerO {
			id = m.opts.Config.Players.X
		}
		if id == registry.Stdin {
			return fmt.Errorf("%w: %s", ErrInteractiveBot, id)
		}
		if bot, err = registry.Create(id, m.seed); err != nil {
			return err
		}
	}

	mt := match.New(s, m.logger)
	if err := mt.AddPlayer(m.opts.Human, &keyboard{name: m.opts.HumanName}); err != nil {
		return err
	}
	if err := mt.AddPlayer(m.opts.Human.Opponent(), bot); err != nil {
		return err
	}

	m.match = mt
	m.saved = false
	m.message = ""
	m.cursor = field.P(s.Cols()/2, s.Rows()/2)
	return nil
}

// Init starts the bot when it moves first.
func (m Model) Init() tea.Cmd {
	return m.botCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case BotMoveMsg:
		return m.handleBotMove()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.match.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Restart):
		m.round++
		if err := m.newRound(); err != nil {
			m.message = err.Error()
			return m, nil
		}
		return m, m.botCmd()
	case key.Matches(msg, m.keys.Up):
		m.cursor.Y = core.Clamp(m.cursor.Y-1, 0, v.Rows()-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Y = core.Clamp(m.cursor.Y+1, 0, v.Rows()-1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.X = core.Clamp(m.cursor.X-1, 0, v.Cols()-1)
	case key.Matches(msg, m.keys.Right):
		m.cursor.X = core.Clamp(m.cursor.X+1, 0, v.Cols()-1)
	case key.Matches(msg, m.keys.Place):
		return m.place()
	}
	return m, nil
}

// place submits the human move under the cursor. Occupied cells are
// refused here so a slip of the finger does not forfeit the game.
func (m Model) place() (tea.Model, tea.Cmd) {
	v := m.match.State()
	switch {
	case m.match.Done():
		m.message = "game over, press r to play again"
		return m, nil
	case v.CurrentPlayer() != m.opts.Human:
		m.message = "wait for your turn"
		return m, nil
	case v.Get(m.cursor.X, m.cursor.Y) != field.Empty:
		m.message = "that cell is taken"
		return m, nil
	}

	m.message = ""
	m.match.Submit(m.opts.Human, m.cursor.X, m.cursor.Y)
	return m.afterMove()
}

// handleBotMove lets the bot play if it is still its turn.
func (m Model) handleBotMove() (tea.Model, tea.Cmd) {
	if m.match.Done() || m.match.State().CurrentPlayer() == m.opts.Human {
		return m, nil
	}
	if res := m.match.Process(); res == state.ResultError {
		m.message = "bot failed to move"
		return m, nil
	}
	return m.afterMove()
}

func (m Model) afterMove() (tea.Model, tea.Cmd) {
	if m.match.Done() {
		m.saveResult()
		return m, nil
	}
	return m, m.botCmd()
}

// botCmd schedules a bot reply when the bot is to move.
func (m Model) botCmd() tea.Cmd {
	if m.match.Done() || m.match.State().CurrentPlayer() == m.opts.Human {
		return nil
	}
	delay := time.Duration(m.opts.Config.Players.BotDelayMS) * time.Millisecond
	return botMoveCmd(delay)
}

// saveResult records the finished round once.
func (m *Model) saveResult() {
	if m.saved || m.opts.Store == nil {
		return
	}
	r := storage.NewResult(m.opts.Preset, m.seed, m.match.State(), m.match.Outcome())
	id, err := m.opts.Store.SaveResult(r)
	if err != nil {
		m.logger.Warn("could not save result", "error", err)
		m.message = "result not saved"
		return
	}
	m.saved = true
	m.logger.Info("result saved", "id", id)
}

// View renders the board.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.match.State()
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("WALLROW  %d in a row", v.WinLen())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("X: %s   O: %s\n\n",
		m.match.Player(field.PlayerX).Name(), m.match.Player(field.PlayerO).Name()))

	w, h := render.Size(v)
	scr := core.NewScreen(w, h)
	render.Draw(scr, v, &m.cursor)
	b.WriteString(RenderScreen(scr))
	b.WriteString("\n")

	if o := m.match.Outcome(); o.Done() {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(o.String()))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

// State returns the current game view.
func (m Model) State() state.View { return m.match.State() }

// Outcome returns the result of the current round.
func (m Model) Outcome() match.Outcome { return m.match.Outcome() }

// Cursor returns the cell under the cursor.
func (m Model) Cursor() field.Point { return m.cursor }

// Seed returns the seed of the current round.
func (m Model) Seed() int64 { return m.seed }

// Saved reports whether the current round has been recorded.
func (m Model) Saved() bool { return m.saved }

// Message returns the last notice shown under the board.
func (m Model) Message() string { return m.message }

// Run starts the interactive board in the terminal.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
