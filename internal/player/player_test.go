package player

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/state"
)

func newGame(t *testing.T, rows, cols, winLen int, moves ...field.Point) *state.State {
	t.Helper()
	s, err := state.New(state.Opts{Rows: rows, Cols: cols, WinLen: winLen}, nil)
	require.NoError(t, err)
	for _, m := range moves {
		require.Equal(t, state.ResultOK, s.ProcessMove(s.CurrentPlayer(), m.X, m.Y))
	}
	return s
}

func TestStrategiesAlwaysPickFreeCells(t *testing.T) {
	players := []Player{
		NewNeighbor("neighbor", 1),
		NewRandom("random", 2),
		NewBlocker("blocker", 3),
	}

	for _, p := range players {
		t.Run(p.Name(), func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				gen, err := field.NewRandomObstacles(field.ObstacleParams{PlayableFraction: 0.7, MaxObstacleLen: 6, Gap: 1, Seed: seed})
				require.NoError(t, err)
				s, err := state.New(state.Opts{Rows: 8, Cols: 8, WinLen: 8}, gen)
				require.NoError(t, err)

				for s.Status() != state.StatusEnded {
					p.SetSymbol(s.CurrentPlayer())
					m := p.MakeMove(s)
					require.Equal(t, field.Empty, s.Get(m.X, m.Y), "seed %d move %d", seed, s.MoveNo())
					res := s.ProcessMove(s.CurrentPlayer(), m.X, m.Y)
					require.False(t, res.IsDQ())
				}
			}
		})
	}
}

func TestNeighborPrefersAdjacentCells(t *testing.T) {
	s := newGame(t, 5, 5, 5, field.P(2, 2))
	p := NewNeighbor("n", 7)
	p.SetSymbol(field.PlayerO)

	for i := 0; i < 20; i++ {
		m := p.MakeMove(s)
		assert.LessOrEqual(t, abs(m.X-2), 1)
		assert.LessOrEqual(t, abs(m.Y-2), 1)
	}
}

func TestStrategiesOnFullBoard(t *testing.T) {
	s := newGame(t, 1, 2, 2, field.P(0, 0))
	require.Equal(t, state.ResultDraw, s.ProcessMove(field.PlayerO, 1, 0))

	assert.Equal(t, NoMove, NewNeighbor("n", 1).MakeMove(s))
	assert.Equal(t, NoMove, NewRandom("r", 1).MakeMove(s))
	assert.Equal(t, NoMove, NewBlocker("b", 1).MakeMove(s))
}

func TestBlockerTakesWinningCell(t *testing.T) {
	// X: (0,0) (1,0); O: (0,2) (1,2). X to move completes the top row.
	s := newGame(t, 3, 3, 3, field.P(0, 0), field.P(0, 2), field.P(1, 0), field.P(1, 2))
	b := NewBlocker("b", 1)
	b.SetSymbol(field.PlayerX)

	assert.Equal(t, field.P(2, 0), b.MakeMove(s))
}

func TestBlockerBlocksOpponent(t *testing.T) {
	// X: (0,0) (2,2); O: (0,1) (1,1). X must block (2,1).
	s := newGame(t, 3, 3, 3, field.P(0, 0), field.P(0, 1), field.P(2, 2), field.P(1, 1))
	b := NewBlocker("b", 1)
	b.SetSymbol(field.PlayerX)

	assert.Equal(t, field.P(2, 1), b.MakeMove(s))
}

func TestCompletesLine(t *testing.T) {
	s := newGame(t, 1, 4, 3, field.P(0, 0))

	assert.False(t, completesLine(s, field.P(1, 0), field.PlayerX))
	require.Equal(t, state.ResultOK, s.ProcessMove(field.PlayerO, 3, 0))
	require.Equal(t, state.ResultOK, s.ProcessMove(field.PlayerX, 1, 0))
	assert.True(t, completesLine(s, field.P(2, 0), field.PlayerX))
	assert.False(t, completesLine(s, field.P(2, 0), field.PlayerO))
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    field.Point
		wantErr bool
	}{
		{"1 2", field.P(1, 2), false},
		{"  3   4 ", field.P(3, 4), false},
		{"5,6", field.P(5, 6), false},
		{"-1 0", field.P(-1, 0), false},
		{"1", NoMove, true},
		{"a b", NoMove, true},
		{"1 2 3", NoMove, true},
		{"", NoMove, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMove(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStdinRetriesThenReportsClosedInput(t *testing.T) {
	s := newGame(t, 3, 3, 3)
	var out bytes.Buffer
	p := NewStdin("human", strings.NewReader("garbage\n2 1\n"), &out)
	p.SetSymbol(field.PlayerX)

	assert.Equal(t, field.P(2, 1), p.MakeMove(s))
	assert.NoError(t, p.Err())
	assert.Contains(t, out.String(), "human (X) move x y: ")
	assert.Contains(t, out.String(), "want \"x y\"")

	assert.Equal(t, NoMove, p.MakeMove(s))
	assert.ErrorIs(t, p.Err(), ErrInputClosed)
}

func TestStdinGivesUpWhenCancelled(t *testing.T) {
	s := newGame(t, 3, 3, 3)
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewStdin("human", pr, io.Discard)
	p.SetSymbol(field.PlayerX)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, NoMove, p.MakeMoveContext(ctx, s))
	assert.NoError(t, p.Err(), "cancellation is not an input error")

	go func() { _, _ = io.WriteString(pw, "0 2\n") }()
	assert.Equal(t, field.P(0, 2), p.MakeMove(s), "the pending line is still delivered")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
