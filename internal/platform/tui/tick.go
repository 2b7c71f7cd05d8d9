// Package tui provides the Bubble Tea front end: the interactive board,
// the results table and the SSH server that hosts the board.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// BotMoveMsg tells the board model that the bot side may move.
type BotMoveMsg time.Time

// botMoveCmd returns a command that sends a BotMoveMsg after delay.
func botMoveCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return BotMoveMsg(t)
	})
}
