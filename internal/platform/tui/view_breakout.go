package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/games/breakout"
	"github.com/chorequest/minigames/internal/session"
)

// breakoutView renders the paddle game. Pointer motion maps to an
// absolute paddle target; arrow keys nudge it.
type breakoutView struct{}

func (breakoutView) handleKey(msg tea.KeyMsg, _ session.Projection) (session.Input, bool) {
	switch msg.String() {
	case "left", "a":
		return session.DirInput{Heading: core.Left}, true
	case "right", "d":
		return session.DirInput{Heading: core.Right}, true
	}
	return nil, false
}

func (breakoutView) handleMouse(msg tea.MouseMsg, p session.Projection) (session.Input, bool) {
	if _, ok := p.View.(breakout.View); !ok {
		return nil, false
	}
	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return nil, false
	}
	// The board border occupies the first screen column.
	x := msg.X - 1
	if x < 0 {
		return nil, false
	}
	return session.TargetInput{X: float64(x) + 0.5}, true
}

func (breakoutView) stats(p session.Projection, th theme) string {
	v, ok := p.View.(breakout.View)
	if !ok {
		return ""
	}
	hearts := strings.Repeat("♥", v.Lives)
	return th.bad.Render(hearts) + "  " +
		th.label.Render("wave ") + th.value.Render(fmt.Sprintf("%d/%d", v.Wave, v.MaxWave))
}

func (breakoutView) board(p session.Projection, th theme) string {
	v, ok := p.View.(breakout.View)
	if !ok {
		return ""
	}
	c := newCanvas(v.BoardW, v.BoardH)
	for _, b := range v.Bricks {
		// One trailing gap per brick keeps the columns readable.
		c.hline(b.Cell.X*v.BrickW, v.BrickTop+b.Cell.Y, v.BrickW-1, '█', brickStyle(b.Color))
	}
	paddleX := int(v.PaddleX + 0.5)
	c.hline(paddleX, v.BoardH-1, int(v.PaddleW), '▀', styPaddle)
	c.set(int(v.Ball.X), int(v.Ball.Y), '●', styBall)
	return c.render(th)
}

func (breakoutView) help() []key.Binding {
	return []key.Binding{
		key.NewBinding(
			key.WithKeys("left", "right", "a", "d"),
			key.WithHelp("←→/mouse", "move paddle"),
		),
	}
}
