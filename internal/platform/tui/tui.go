// Package tui is the Bubble Tea front end for the minigame sessions. It
// consumes the projections a session loop publishes, translates key
// presses into engine inputs, and renders boards with lipgloss. The same
// models serve local play and SSH sessions.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chorequest/minigames/internal/session"
)

// projectionMsg carries the latest session projection into the Bubble Tea
// update loop.
type projectionMsg session.Projection

// waitForProjection returns a command that blocks on the loop's observer
// channel and resurfaces the next projection as a message.
func waitForProjection(ch <-chan session.Projection) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return projectionMsg(p)
	}
}

// fmtMillis renders a millisecond clock as m:ss.
func fmtMillis(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// fmtClock renders the session clock: wall time for event-driven games,
// a tick count otherwise.
func fmtClock(p session.Projection) string {
	if p.Millis {
		return fmtMillis(p.Clock)
	}
	return fmt.Sprintf("%d ticks", p.Clock)
}

// centerText centers text within the given width. Width is measured with
// lipgloss so styled text does not count its escape codes.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
