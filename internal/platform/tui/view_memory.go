package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chorequest/minigames/internal/games/memory"
	"github.com/chorequest/minigames/internal/session"
)

// memoryView renders the card board and owns the pick cursor.
type memoryView struct {
	cursor int
}

func (mv *memoryView) handleKey(msg tea.KeyMsg, p session.Projection) (session.Input, bool) {
	v, ok := p.View.(memory.View)
	if !ok || len(v.Cards) == 0 {
		return nil, false
	}
	last := len(v.Cards) - 1
	if mv.cursor > last {
		mv.cursor = last
	}

	switch msg.String() {
	case "left", "a":
		if mv.cursor > 0 {
			mv.cursor--
		}
	case "right", "d":
		if mv.cursor < last {
			mv.cursor++
		}
	case "up", "w":
		if mv.cursor-v.Cols >= 0 {
			mv.cursor -= v.Cols
		}
	case "down", "s":
		if mv.cursor+v.Cols <= last {
			mv.cursor += v.Cols
		}
	case "enter", " ":
		return session.PickInput{Index: mv.cursor}, true
	}
	return nil, false
}

func (mv *memoryView) handleMouse(tea.MouseMsg, session.Projection) (session.Input, bool) {
	return nil, false
}

func (mv *memoryView) stats(p session.Projection, th theme) string {
	v, ok := p.View.(memory.View)
	if !ok {
		return ""
	}
	return th.label.Render("pairs ") + th.value.Render(fmt.Sprintf("%d/%d", v.Matched, v.Pairs)) +
		th.muted.Render("  ·  ") +
		th.label.Render("moves ") + th.value.Render(fmt.Sprint(v.Moves))
}

func (mv *memoryView) board(p session.Projection, th theme) string {
	v, ok := p.View.(memory.View)
	if !ok {
		return ""
	}
	var b strings.Builder
	for i, c := range v.Cards {
		if i > 0 && i%v.Cols == 0 {
			b.WriteByte('\n')
		}
		var text string
		var style = th.cardBack
		switch {
		case c.Matched:
			text = fmt.Sprintf(" %c ", 'A'+rune(c.Symbol))
			style = th.cardMatched
		case c.FaceUp:
			text = fmt.Sprintf("[%c]", 'A'+rune(c.Symbol))
			style = th.cardFace
		default:
			text = "[?]"
		}
		if i == mv.cursor {
			style = th.cursor
		}
		b.WriteString(style.Render(text))
		b.WriteByte(' ')
	}
	return b.String()
}

func (mv *memoryView) help() []key.Binding {
	return []key.Binding{
		key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("arrows", "cursor"),
		),
		key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "flip"),
		),
	}
}
