package match

import (
	"fmt"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/state"
)

// EndReason describes why a match ended.
type EndReason int

const (
	ReasonNone      EndReason = iota // Match still running
	ReasonWin                        // A side completed a line
	ReasonDraw                       // Move cap reached or both lines counted
	ReasonDQ                         // A side made an illegal move and forfeits
	ReasonCancelled                  // Context cancelled before the end
)

func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "running"
	case ReasonWin:
		return "win"
	case ReasonDraw:
		return "draw"
	case ReasonDQ:
		return "disqualification"
	case ReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseEndReason converts the String form back to an EndReason.
func ParseEndReason(s string) (EndReason, bool) {
	for r := ReasonNone; r <= ReasonCancelled; r++ {
		if r.String() == s {
			return r, true
		}
	}
	return ReasonNone, false
}

// Outcome is the result of a finished match.
type Outcome struct {
	Reason   EndReason
	Winner   field.Symbol     // Empty for draws and cancelled matches
	Offender field.Symbol     // Side disqualified, Empty otherwise
	DQ       state.MoveResult // Disqualifying result when Reason is ReasonDQ
	Moves    int              // Accepted moves
	Players  map[field.Symbol]string
}

// Done reports whether the match has ended.
func (o Outcome) Done() bool { return o.Reason != ReasonNone }

// WinnerName returns the name of the winning player, or "" without a winner.
func (o Outcome) WinnerName() string {
	if !o.Winner.IsPlayer() {
		return ""
	}
	return o.Players[o.Winner]
}

// String returns a one-line summary.
func (o Outcome) String() string {
	switch o.Reason {
	case ReasonWin:
		return fmt.Sprintf("%s (%s) wins after %d moves", o.Winner, o.WinnerName(), o.Moves)
	case ReasonDraw:
		return fmt.Sprintf("draw after %d moves", o.Moves)
	case ReasonDQ:
		return fmt.Sprintf("%s (%s) disqualified: %s; %s wins",
			o.Offender, o.Players[o.Offender], o.DQ, o.Winner)
	case ReasonCancelled:
		return fmt.Sprintf("cancelled after %d moves", o.Moves)
	default:
		return "in progress"
	}
}
