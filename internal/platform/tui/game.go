package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/session"
)

// view renders one game's board and translates its movement keys into
// engine inputs. Views keep their own cursor state; everything else comes
// from the projection they are handed.
type view interface {
	handleKey(msg tea.KeyMsg, p session.Projection) (session.Input, bool)
	handleMouse(msg tea.MouseMsg, p session.Projection) (session.Input, bool)
	stats(p session.Projection, th theme) string
	board(p session.Projection, th theme) string
	help() []key.Binding
}

// newView picks the view for a game id. Engines registered without a
// dedicated view fall back to a bare status rendering.
func newView(gameID string) view {
	switch gameID {
	case "snake":
		return &snakeView{}
	case "breakout":
		return &breakoutView{}
	case "memory":
		return &memoryView{}
	case "puzzle":
		return &puzzleView{}
	case "quiz":
		return &quizView{}
	}
	return plainView{}
}

// plainView is the fallback board for engines without a renderer.
type plainView struct{}

func (plainView) handleKey(tea.KeyMsg, session.Projection) (session.Input, bool) {
	return nil, false
}
func (plainView) handleMouse(tea.MouseMsg, session.Projection) (session.Input, bool) {
	return nil, false
}
func (plainView) stats(session.Projection, theme) string { return "" }
func (plainView) board(p session.Projection, th theme) string {
	return th.muted.Render("no view for " + p.GameID)
}
func (plainView) help() []key.Binding { return nil }

// gameHelp merges the chrome bindings with a view's movement bindings for
// the help bubble.
type gameHelp struct {
	chrome gameKeyMap
	moves  []key.Binding
}

func (g gameHelp) ShortHelp() []key.Binding {
	return append(append([]key.Binding{}, g.moves...), g.chrome.ShortHelp()...)
}

func (g gameHelp) FullHelp() [][]key.Binding {
	return append([][]key.Binding{g.moves}, g.chrome.FullHelp()...)
}

// GameModel drives one live session. It owns the loop handle, forwards
// inputs, and renders whatever projection arrived last; all game state
// lives on the loop goroutine.
type GameModel struct {
	loop *session.Loop
	view view
	keys gameKeyMap
	help help.Model
	th   theme

	proj   session.Projection
	notice string
	width  int
	height int

	backToMenu bool
	quitting   bool
}

// NewGameModel wraps a started loop. The first projection arrives through
// Init's command.
func NewGameModel(loop *session.Loop, gameID string, width, height int) GameModel {
	h := help.New()
	h.Width = width
	return GameModel{
		loop:   loop,
		view:   newView(gameID),
		keys:   defaultGameKeyMap(),
		help:   h,
		th:     defaultTheme(),
		width:  width,
		height: height,
	}
}

// Init starts listening for projections.
func (m GameModel) Init() tea.Cmd {
	return waitForProjection(m.loop.Projections())
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectionMsg:
		m.proj = session.Projection(msg)
		if m.proj.Notice != "" {
			m.notice = m.proj.Notice
		}
		return m, waitForProjection(m.loop.Projections())

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if in, ok := m.view.handleMouse(msg, m.proj); ok {
			m.loop.Submit(in)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.loop.Background()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.loop.Background()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if m.proj.Status == session.Paused {
			m.loop.Resume()
		} else {
			m.loop.Pause()
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.notice = ""
		m.loop.NewGame(m.proj.Level)
		return m, nil

	case key.Matches(msg, m.keys.Difficulty):
		m.notice = ""
		m.loop.NewGame(levelForKey(msg.String(), m.proj.Level))
		return m, nil
	}

	if in, ok := m.view.handleKey(msg, m.proj); ok {
		m.loop.Submit(in)
	}
	return m, nil
}

func levelForKey(keyStr string, current config.Level) config.Level {
	switch keyStr {
	case "e":
		return config.Easy
	case "m":
		return config.Medium
	case "h":
		return config.Hard
	}
	return current
}

// BackToMenu reports whether the player asked to return to the picker.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// IsQuitting reports whether the player asked to leave entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// View renders header, board, status, and help.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	p := m.proj

	var b strings.Builder
	b.WriteString(m.renderHeader(p))
	b.WriteString("\n")
	if stats := m.view.stats(p, m.th); stats != "" {
		b.WriteString(stats)
		b.WriteString("\n")
	}
	b.WriteString(m.th.board.Render(m.view.board(p, m.th)))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(p))
	b.WriteString("\n")
	b.WriteString(m.help.View(gameHelp{chrome: m.keys, moves: m.view.help()}))
	return b.String()
}

func (m GameModel) renderHeader(p session.Projection) string {
	th := m.th
	parts := []string{
		th.title.Render(p.Title) + th.muted.Render(" · "+p.Level.String()),
		th.label.Render("score ") + th.value.Render(strconv.Itoa(p.Score)),
	}
	if p.Best.Score > 0 {
		parts = append(parts, th.label.Render("best ")+th.value.Render(strconv.Itoa(p.Best.Score)))
	}
	parts = append(parts, th.muted.Render(fmtClock(p)))
	return strings.Join(parts, "   ")
}

// renderStatus shows the session state, or the latest engine notice while
// play is running.
func (m GameModel) renderStatus(p session.Projection) string {
	th := m.th
	switch p.Status {
	case session.NotStarted:
		return th.muted.Render("make a move to start")
	case session.Paused:
		return th.overlay.Render("PAUSED") + th.muted.Render("  p to resume")
	case session.Over:
		verdict := "GAME OVER"
		if p.Outcome.Won() {
			verdict = "YOU WON"
		}
		return th.overlay.Render(verdict) + th.muted.Render("  n for a new game")
	}
	if m.notice != "" {
		return th.notice.Render(m.notice)
	}
	return " "
}
