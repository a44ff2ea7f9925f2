package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/session"
	"github.com/chorequest/minigames/internal/storage"
)

// Scoreboard layout constants.
const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxResults         = 100
)

// ScoreboardKeyMap defines the key bindings for the score screen.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows, per game, the best marks for each difficulty and
// the recent play history.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	bests      map[config.Level]session.Best
	results    []storage.ResultEntry
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	th         theme
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a score screen over all registered games.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		th:     defaultTheme(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadGame(m.games[0].ID)
	}
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Difficulty", Width: 10},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 7},
		{Title: "Moves", Width: 6},
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadGame pulls the ledger and history for one game.
func (m *ScoreboardModel) loadGame(gameID string) {
	m.bests = nil
	m.results = nil
	if m.store != nil {
		m.bests, _ = m.store.Bests(gameID)
		m.results, _ = m.store.RecentResults(gameID, maxResults)
	}

	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Difficulty,
			fmt.Sprintf("%d", r.Score),
			dashMillis(r.Millis),
			dashInt(r.Moves),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func dashMillis(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return fmtMillis(ms)
}

func dashInt(n int) string {
	if n <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the score screen.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadGame(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor--
				if m.gameCursor < 0 {
					m.gameCursor = len(m.games) - 1
				}
				m.loadGame(m.games[m.gameCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		rows := m.table.Rows()
		m.table = m.createTable()
		m.table.SetRows(rows)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the score screen.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "SCORES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("SCORES · %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(m.th.title.Render(title), m.width))
	b.WriteString("\n\n")

	if m.width >= minWidthForSidebar {
		b.WriteString(m.renderWithSidebar())
	} else {
		b.WriteString(m.renderNarrow())
	}

	b.WriteString("\n")
	b.WriteString(m.th.label.Render(m.help.View(m.keys)))
	return b.String()
}

// renderBests shows the per-difficulty ledger line above the history.
func (m ScoreboardModel) renderBests() string {
	var lines []string
	for _, level := range config.Levels() {
		best, ok := m.bests[level]
		if !ok {
			continue
		}
		entry := fmt.Sprintf("%-7s best %d", level.String(), best.Score)
		if best.Millis > 0 {
			entry += " · " + fmtMillis(best.Millis)
		}
		if best.Moves > 0 {
			entry += fmt.Sprintf(" · %d moves", best.Moves)
		}
		lines = append(lines, m.th.value.Render(entry))
	}
	if len(lines) == 0 {
		return m.th.muted.Render("No finished games yet.")
	}
	return strings.Join(lines, "\n")
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.results) == 0 {
		return m.th.muted.Render("No results recorded yet.\nFinish a game to start the history.")
	}
	return m.table.View()
}

// renderWithSidebar lays the game list next to the bests and history.
func (m ScoreboardModel) renderWithSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = m.th.title
		}
		sidebar.WriteString(style.Render(cursor + g.Title))
		sidebar.WriteString("\n")
	}

	mainStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	main := m.renderBests() + "\n\n" + m.renderTableContent()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		mainStyle.Render(main),
	)
}

// renderNarrow shows the current game as tabs over the history.
func (m ScoreboardModel) renderNarrow() string {
	var b strings.Builder
	if len(m.games) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderBests())
	b.WriteString("\n\n")
	b.WriteString(m.renderTableContent())
	return b.String()
}

// IsGoingBack reports whether the player wants the picker back.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the player asked to leave.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }
