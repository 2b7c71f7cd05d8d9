// Package match drives a game between two players and reports the outcome
// to observers. It owns the disqualification policy: an illegal move ends
// the match and the offending side forfeits.
package match

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/player"
	"github.com/vovakirdan/wallrow/internal/state"
)

// Errors returned by match setup and Run.
var (
	ErrBadSide       = errors.New("match: side must be X or O")
	ErrMissingPlayer = errors.New("match: both sides need a player")
)

// Observer is notified after every accepted move and on reset.
type Observer interface {
	Observe(v state.View)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(v state.View)

// Observe calls f(v).
func (f ObserverFunc) Observe(v state.View) { f(v) }

// errReporter is implemented by players that can fail outside the game
// rules, such as a closed input stream.
type errReporter interface {
	Err() error
}

// contextMover is implemented by players that wait on outside input and
// can stop waiting when the match is cancelled.
type contextMover interface {
	MakeMoveContext(ctx context.Context, v state.View) field.Point
}

// Match binds a game state to its players and observers.
// It is not safe for concurrent use.
type Match struct {
	state     *state.State
	players   map[field.Symbol]player.Player
	observers []Observer
	logger    *log.Logger
	outcome   Outcome
	err       error
	ctx       context.Context // set while Run is active
}

// New creates a match around s. A nil logger discards log output.
func New(s *state.State, logger *log.Logger) *Match {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Match{
		state:   s,
		players: make(map[field.Symbol]player.Player, 2),
		logger:  logger,
	}
}

// AddPlayer seats p on side sym and tells it which mark it plays.
func (m *Match) AddPlayer(sym field.Symbol, p player.Player) error {
	if !sym.IsPlayer() {
		return fmt.Errorf("%w: got %s", ErrBadSide, sym)
	}
	p.SetSymbol(sym)
	m.players[sym] = p
	return nil
}

// AddObserver registers o for state notifications.
func (m *Match) AddObserver(o Observer) {
	m.observers = append(m.observers, o)
}

// Player returns the player seated on sym, or nil.
func (m *Match) Player(sym field.Symbol) player.Player {
	return m.players[sym]
}

// State returns the read-only view of the game.
func (m *Match) State() state.View {
	return m.state
}

// Outcome returns the match result so far.
func (m *Match) Outcome() Outcome {
	return m.outcome
}

// Done reports whether the match has ended.
func (m *Match) Done() bool {
	return m.outcome.Done()
}

// Process asks the side to move for a move and applies it.
func (m *Match) Process() state.MoveResult {
	if m.Done() {
		return state.ResultEnded
	}
	side := m.state.CurrentPlayer()
	p, ok := m.players[side]
	if !ok {
		m.err = fmt.Errorf("%w: no player for %s", ErrMissingPlayer, side)
		return state.ResultError
	}

	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	var pt field.Point
	if cm, ok := p.(contextMover); ok {
		pt = cm.MakeMoveContext(ctx, m.state)
	} else {
		pt = p.MakeMove(m.state)
	}
	if err := ctx.Err(); err != nil {
		// A move that arrives after cancellation is dropped.
		m.err = err
		return state.ResultError
	}
	if r, ok := p.(errReporter); ok && r.Err() != nil {
		m.err = fmt.Errorf("match: player %s: %w", p.Name(), r.Err())
		return state.ResultError
	}
	return m.Submit(side, pt.X, pt.Y)
}

// Submit applies an externally supplied move for sym, as the interactive
// board does for its human side.
func (m *Match) Submit(sym field.Symbol, x, y int) state.MoveResult {
	if m.Done() {
		return state.ResultEnded
	}

	res := m.state.ProcessMove(sym, x, y)
	m.logger.Debug("move", "no", m.state.MoveNo(), "side", sym, "x", x, "y", y, "result", res)

	switch {
	case res == state.ResultWin:
		m.finish(Outcome{Reason: ReasonWin, Winner: m.state.Winner()})
	case res == state.ResultDraw:
		m.finish(Outcome{Reason: ReasonDraw})
	case res.IsDQ():
		m.finish(Outcome{Reason: ReasonDQ, Winner: sym.Opponent(), Offender: sym, DQ: res})
	case res == state.ResultOK:
	default:
		// Ended or Error: nothing changed.
		return res
	}

	m.notify()
	return res
}

// Run plays until the match ends, ctx is cancelled or a player fails.
func (m *Match) Run(ctx context.Context) (Outcome, error) {
	for _, side := range []field.Symbol{field.PlayerX, field.PlayerO} {
		if _, ok := m.players[side]; !ok {
			return m.outcome, fmt.Errorf("%w: no player for %s", ErrMissingPlayer, side)
		}
	}

	m.logger.Info("match started",
		"x", m.players[field.PlayerX].Name(),
		"o", m.players[field.PlayerO].Name(),
		"board", fmt.Sprintf("%dx%d", m.state.Rows(), m.state.Cols()),
		"win_len", m.state.WinLen(),
		"max_moves", m.state.MaxMoves(),
	)
	m.notify()

	m.ctx = ctx
	defer func() { m.ctx = nil }()

	for !m.Done() {
		if err := ctx.Err(); err != nil {
			m.finish(Outcome{Reason: ReasonCancelled})
			return m.outcome, err
		}
		if res := m.Process(); res == state.ResultError {
			if err := ctx.Err(); err != nil {
				m.finish(Outcome{Reason: ReasonCancelled})
				return m.outcome, err
			}
			return m.outcome, m.err
		}
	}
	return m.outcome, nil
}

// Reset re-rolls the field and clears the outcome, keeping players and
// observers.
func (m *Match) Reset() {
	m.state.Reset()
	m.outcome = Outcome{}
	m.err = nil
	m.notify()
}

func (m *Match) finish(o Outcome) {
	o.Moves = m.state.MoveNo()
	o.Players = make(map[field.Symbol]string, len(m.players))
	for sym, p := range m.players {
		o.Players[sym] = p.Name()
	}
	m.outcome = o

	m.logger.Info("match ended", "reason", o.Reason, "winner", o.Winner, "moves", o.Moves)
	if o.Reason == ReasonDQ {
		m.logger.Warn("player disqualified", "side", o.Offender, "player", o.Players[o.Offender], "result", o.DQ)
	}
}

func (m *Match) notify() {
	for _, o := range m.observers {
		o.Observe(m.state)
	}
}
