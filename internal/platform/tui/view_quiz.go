package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chorequest/minigames/internal/games/quiz"
	"github.com/chorequest/minigames/internal/session"
)

// quizView renders the current question and owns the answer cursor. The
// cursor snaps back to the first choice whenever the question changes.
type quizView struct {
	cursor   int
	answered int
}

func (qv *quizView) sync(v quiz.View) {
	if v.Answered != qv.answered {
		qv.answered = v.Answered
		qv.cursor = 0
	}
	if last := len(v.Choices) - 1; qv.cursor > last && last >= 0 {
		qv.cursor = last
	}
}

func (qv *quizView) handleKey(msg tea.KeyMsg, p session.Projection) (session.Input, bool) {
	v, ok := p.View.(quiz.View)
	if !ok || len(v.Choices) == 0 {
		return nil, false
	}
	qv.sync(v)

	keyStr := msg.String()
	switch keyStr {
	case "up", "w":
		if qv.cursor > 0 {
			qv.cursor--
		}
		return nil, false
	case "down", "s":
		if qv.cursor < len(v.Choices)-1 {
			qv.cursor++
		}
		return nil, false
	case "enter", " ":
		return session.PickInput{Index: qv.cursor}, true
	}
	if len(keyStr) == 1 && keyStr[0] >= '1' && keyStr[0] <= '9' {
		idx := int(keyStr[0] - '1')
		if idx < len(v.Choices) {
			return session.PickInput{Index: idx}, true
		}
	}
	return nil, false
}

func (qv *quizView) handleMouse(tea.MouseMsg, session.Projection) (session.Input, bool) {
	return nil, false
}

func (qv *quizView) stats(p session.Projection, th theme) string {
	v, ok := p.View.(quiz.View)
	if !ok {
		return ""
	}
	progress := fmt.Sprintf("%d/%d", v.Answered, v.Total)
	if v.Number > 0 {
		progress = fmt.Sprintf("question %d of %d", v.Number, v.Total)
	}
	return th.label.Render(progress) +
		th.muted.Render("  ·  ") +
		th.good.Render(fmt.Sprintf("%d correct", v.Correct))
}

func (qv *quizView) board(p session.Projection, th theme) string {
	v, ok := p.View.(quiz.View)
	if !ok {
		return ""
	}
	if v.Number == 0 {
		return th.muted.Render(fmt.Sprintf("Round over: %d of %d correct.", v.Correct, v.Total))
	}
	qv.sync(v)

	var b strings.Builder
	b.WriteString(th.value.Render(v.Prompt))
	b.WriteString("\n\n")
	for i, choice := range v.Choices {
		line := fmt.Sprintf("%d) %s", i+1, choice)
		if i == qv.cursor {
			b.WriteString(th.cursor.Render(line))
		} else {
			b.WriteString(th.choice.Render(line))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (qv *quizView) help() []key.Binding {
	return []key.Binding{
		key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑↓", "choose"),
		),
		key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter/1-9", "answer"),
		),
	}
}
