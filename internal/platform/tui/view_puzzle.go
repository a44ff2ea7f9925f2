package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/games/puzzle"
	"github.com/chorequest/minigames/internal/session"
)

// puzzleView renders the sliding board. An arrow slides the neighboring
// tile in that direction, which is what the engine's heading input does.
type puzzleView struct{}

func (puzzleView) handleKey(msg tea.KeyMsg, _ session.Projection) (session.Input, bool) {
	switch msg.String() {
	case "up", "w":
		return session.DirInput{Heading: core.Up}, true
	case "down", "s":
		return session.DirInput{Heading: core.Down}, true
	case "left", "a":
		return session.DirInput{Heading: core.Left}, true
	case "right", "d":
		return session.DirInput{Heading: core.Right}, true
	}
	return nil, false
}

func (puzzleView) handleMouse(tea.MouseMsg, session.Projection) (session.Input, bool) {
	return nil, false
}

func (puzzleView) stats(p session.Projection, th theme) string {
	return th.label.Render("moves ") + th.value.Render(strconv.Itoa(p.Moves))
}

func (puzzleView) board(p session.Projection, th theme) string {
	v, ok := p.View.(puzzle.View)
	if !ok {
		return ""
	}
	var b strings.Builder
	for i, t := range v.Tiles {
		if i > 0 && i%v.Side == 0 {
			b.WriteByte('\n')
		}
		if t == 0 {
			b.WriteString(th.blank.Render("  · "))
			continue
		}
		b.WriteString(th.tile.Render(fmt.Sprintf(" %2d ", t)))
	}
	return b.String()
}

func (puzzleView) help() []key.Binding {
	return []key.Binding{
		key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
			key.WithHelp("arrows/wasd", "slide"),
		),
	}
}
