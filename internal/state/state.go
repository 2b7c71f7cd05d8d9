// Package state implements the wallrow turn and status machine: move
// validation, the win-line scan and end-of-game resolution including the
// grace move granted after a first-player win.
package state

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/wallrow/internal/field"
)

// ErrInvalidOpts is returned when a game cannot be built from the options.
var ErrInvalidOpts = errors.New("state: invalid options")

// Status is the lifecycle stage of a game.
// It only moves forward: Created -> Active -> (LastMove) -> Ended.
type Status int

const (
	StatusCreated Status = iota
	StatusActive
	StatusLastMove
	StatusEnded
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusActive:
		return "Active"
	case StatusLastMove:
		return "LastMove"
	case StatusEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// MoveResult is the outcome of ProcessMove.
type MoveResult int

const (
	ResultOK MoveResult = iota
	ResultDraw
	ResultWin
	ResultEnded
	ResultDQOutOfField
	ResultDQOutOfOrder
	ResultDQPlaceOccupied
	ResultError
)

// String returns a human-readable result.
func (r MoveResult) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultDraw:
		return "Draw"
	case ResultWin:
		return "Win"
	case ResultEnded:
		return "Ended"
	case ResultDQOutOfField:
		return "DQ: out of field"
	case ResultDQOutOfOrder:
		return "DQ: out of order"
	case ResultDQPlaceOccupied:
		return "DQ: place occupied"
	case ResultError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsDQ reports whether the result disqualifies the acting side.
func (r MoveResult) IsDQ() bool {
	return r == ResultDQOutOfField || r == ResultDQOutOfOrder || r == ResultDQPlaceOccupied
}

// Opts is the fixed configuration of a game.
type Opts struct {
	Rows     int // Board height
	Cols     int // Board width
	WinLen   int // Marks in a row needed to win
	MaxMoves int // Move cap (0 = number of free cells)
}

// Validate checks that a playable board can be built from o.
func (o Opts) Validate() error {
	if o.Rows <= 0 || o.Cols <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidOpts, o.Rows, o.Cols)
	}
	if o.WinLen <= 0 {
		return fmt.Errorf("%w: win length %d", ErrInvalidOpts, o.WinLen)
	}
	if o.WinLen > o.Rows && o.WinLen > o.Cols {
		return fmt.Errorf("%w: win length %d exceeds board %dx%d", ErrInvalidOpts, o.WinLen, o.Rows, o.Cols)
	}
	if o.MaxMoves < 0 {
		return fmt.Errorf("%w: move cap %d", ErrInvalidOpts, o.MaxMoves)
	}
	return nil
}

// View is the read-only surface handed to players and observers.
type View interface {
	Rows() int
	Cols() int
	WinLen() int
	MaxMoves() int
	Get(x, y int) field.Symbol
	CurrentPlayer() field.Symbol
	MoveNo() int
	Status() Status
	Winner() field.Symbol
}

// State owns the grid of one game and drives its turns.
// It is not safe for concurrent use; independent games may run in parallel.
type State struct {
	opts     Opts
	init     field.Initializer
	grid     *field.Grid
	maxMoves int // Effective cap after clamping to free cells
	moveNo   int
	status   Status
	player   field.Symbol
	winner   field.Symbol
}

var _ View = (*State)(nil)

// New validates opts, seeds the field with init and returns a game ready for
// its first move. A nil init leaves the field without obstacles.
func New(opts Opts, init field.Initializer) (*State, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	grid, err := field.NewGrid(opts.Rows, opts.Cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOpts, err)
	}
	if init == nil {
		init = field.NoObstacles{}
	}

	s := &State{opts: opts, init: init, grid: grid}
	s.Reset()
	return s, nil
}

// Reset re-rolls the field and restarts the game with the same options.
func (s *State) Reset() {
	s.grid.Reset()
	s.init.Initialize(s.grid)

	free := s.grid.FreeCells()
	s.maxMoves = s.opts.MaxMoves
	if s.maxMoves == 0 || s.maxMoves > free {
		s.maxMoves = free
	}
	s.moveNo = 0
	s.player = field.PlayerX
	s.status = StatusCreated
	s.winner = field.Empty
}

// ProcessMove validates and applies a move by side at (x, y).
//
// A first-player line with moves remaining does not end the game at once: the
// opponent gets one grace move, and a counter-line on that move is a draw. A
// second-player line ends the game immediately.
func (s *State) ProcessMove(side field.Symbol, x, y int) MoveResult {
	if s.status == StatusEnded {
		return ResultEnded
	}
	if !side.IsPlayer() {
		return ResultError
	}
	if side != s.player {
		return ResultDQOutOfOrder
	}
	if !s.grid.IsValid(x, y) {
		return ResultDQOutOfField
	}
	if s.grid.Get(x, y) != field.Empty {
		return ResultDQPlaceOccupied
	}

	if err := s.grid.Set(x, y, side); err != nil {
		// Unreachable after the checks above.
		return ResultError
	}
	s.moveNo++
	s.player = side.Opponent()
	winning := s.isWinning(x, y)

	if s.status == StatusLastMove {
		s.status = StatusEnded
		if winning {
			return ResultDraw
		}
		// The side that triggered the grace move keeps its win.
		s.winner = s.player
		return ResultWin
	}

	s.status = StatusActive
	if winning {
		switch {
		case s.moveNo%2 == 0, s.moveNo >= s.maxMoves:
			s.status = StatusEnded
			s.winner = side
			return ResultWin
		default:
			s.status = StatusLastMove
			return ResultOK
		}
	}
	if s.moveNo >= s.maxMoves {
		s.status = StatusEnded
		return ResultDraw
	}
	return ResultOK
}

// Opts returns the configured options (MaxMoves as configured, not clamped).
func (s *State) Opts() Opts { return s.opts }

// Initializer returns the field initializer used on Reset.
func (s *State) Initializer() field.Initializer { return s.init }

// Field returns a copy of the current grid.
func (s *State) Field() *field.Grid { return s.grid.Clone() }

// Rows returns the board height.
func (s *State) Rows() int { return s.opts.Rows }

// Cols returns the board width.
func (s *State) Cols() int { return s.opts.Cols }

// WinLen returns the line length needed to win.
func (s *State) WinLen() int { return s.opts.WinLen }

// MaxMoves returns the effective move cap.
func (s *State) MaxMoves() int { return s.maxMoves }

// Get returns the symbol at (x, y); out of range reads as Wall.
func (s *State) Get(x, y int) field.Symbol { return s.grid.Get(x, y) }

// IsValid reports whether (x, y) is on the board.
func (s *State) IsValid(x, y int) bool { return s.grid.IsValid(x, y) }

// CurrentPlayer returns the side to move.
func (s *State) CurrentPlayer() field.Symbol { return s.player }

// MoveNo returns the number of accepted moves.
func (s *State) MoveNo() int { return s.moveNo }

// Status returns the lifecycle stage.
func (s *State) Status() Status { return s.status }

// Winner returns the winning side, or Empty for draws and unfinished games.
func (s *State) Winner() field.Symbol { return s.winner }
