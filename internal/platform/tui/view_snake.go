package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/games/snake"
	"github.com/chorequest/minigames/internal/session"
)

// snakeView renders the grid crawler. Board cells are drawn two runes
// wide so the grid is roughly square on screen.
type snakeView struct{}

func (snakeView) handleKey(msg tea.KeyMsg, _ session.Projection) (session.Input, bool) {
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

func (snakeView) handleMouse(tea.MouseMsg, session.Projection) (session.Input, bool) {
	return nil, false
}

func (snakeView) stats(p session.Projection, th theme) string {
	v, ok := p.View.(snake.View)
	if !ok {
		return ""
	}
	return th.label.Render("length ") + th.value.Render(strconv.Itoa(len(v.Body)))
}

func (snakeView) board(p session.Projection, th theme) string {
	v, ok := p.View.(snake.View)
	if !ok {
		return ""
	}
	c := newCanvas(v.Grid*2, v.Grid)
	for i, cell := range v.Body {
		r, style := 'o', stySnakeBody
		if i == 0 {
			r, style = '@', stySnakeHead
		}
		c.set(cell.X*2, cell.Y, r, style)
	}
	if v.HasFood {
		c.set(v.Food.X*2, v.Food.Y, '*', styFood)
	}
	return c.render(th)
}

func (snakeView) help() []key.Binding {
	return []key.Binding{
		key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
			key.WithHelp("arrows/wasd", "steer"),
		),
	}
}
