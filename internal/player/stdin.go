package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/state"
)

// ErrInputClosed is reported by Stdin.Err once its reader is exhausted.
var ErrInputClosed = errors.New("player: input closed")

// Stdin reads moves as "x y" lines from a reader, prompting on a writer.
// Malformed lines are reported and read again. Lines are read by a
// background goroutine, so a cancelled wait leaves the reader blocked but
// never applies a line typed afterwards.
type Stdin struct {
	base
	in      *bufio.Scanner
	out     io.Writer
	once    sync.Once
	lines   chan string
	scanErr error // set before lines is closed
	err     error
}

// NewStdin creates a line-based human player.
func NewStdin(name string, in io.Reader, out io.Writer) *Stdin {
	return &Stdin{
		base: base{name: name},
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// MakeMove implements Player. When input runs out it returns NoMove and
// Err reports why.
func (s *Stdin) MakeMove(v state.View) field.Point {
	return s.MakeMoveContext(context.Background(), v)
}

// MakeMoveContext is MakeMove that gives up when ctx is done. A cancelled
// wait returns NoMove and leaves Err unset.
func (s *Stdin) MakeMoveContext(ctx context.Context, _ state.View) field.Point {
	s.once.Do(s.startReader)
	for {
		fmt.Fprintf(s.out, "%s (%s) move x y: ", s.name, s.symbol)
		select {
		case <-ctx.Done():
			return NoMove
		case line, ok := <-s.lines:
			if !ok {
				s.err = ErrInputClosed
				if s.scanErr != nil {
					s.err = fmt.Errorf("%w: %w", ErrInputClosed, s.scanErr)
				}
				return NoMove
			}
			p, err := ParseMove(line)
			if err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			return p
		}
	}
}

func (s *Stdin) startReader() {
	s.lines = make(chan string)
	go func() {
		defer close(s.lines)
		for s.in.Scan() {
			s.lines <- s.in.Text()
		}
		s.scanErr = s.in.Err()
	}()
}

// Err returns the input error that stopped the player, if any.
func (s *Stdin) Err() error { return s.err }

// ParseMove parses "x y" (comma separators allowed) into a point.
func ParseMove(line string) (field.Point, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 2 {
		return NoMove, fmt.Errorf("player: want \"x y\", got %q", line)
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return NoMove, fmt.Errorf("player: bad x: %w", err)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return NoMove, fmt.Errorf("player: bad y: %w", err)
	}
	return field.P(x, y), nil
}
