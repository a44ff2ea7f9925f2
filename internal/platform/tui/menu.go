package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/storage"
)

// MenuItem is one selectable game.
type MenuItem struct {
	GameID string
	Title  string
	Saved  bool // a resumable session exists
}

// MenuModel is the game picker: a game list plus a difficulty selector.
type MenuModel struct {
	items  []MenuItem
	cursor int
	level  config.Level
	width  int
	height int
	th     theme

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel lists the registered games, flagging the ones with a saved
// session so the picker can show a resume hint.
func NewMenuModel(store *storage.Store, level config.Level, width, height int) MenuModel {
	m := MenuModel{
		level:  level,
		width:  width,
		height: height,
		th:     defaultTheme(),
	}
	m.reload(store)
	return m
}

// reload refreshes the game list and save badges. Called when the picker
// regains the screen, since a finished game clears its save.
func (m *MenuModel) reload(store *storage.Store) {
	var saves map[string]storage.SaveInfo
	if store != nil {
		saves, _ = store.Saves()
	}
	games := registry.List()
	m.items = make([]MenuItem, 0, len(games))
	for _, g := range games {
		_, saved := saves[g.ID]
		m.items = append(m.items, MenuItem{GameID: g.ID, Title: g.Title, Saved: saved})
	}
	if m.cursor >= len(m.items) {
		m.cursor = 0
	}
	m.selected = nil
	m.openScoreboard = false
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch menuAction(msg.String()) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionPrevLevel:
		m.level = cycleLevel(m.level, -1)

	case MenuActionNextLevel:
		m.level = cycleLevel(m.level, +1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}
	return m, nil
}

func cycleLevel(l config.Level, dir int) config.Level {
	levels := config.Levels()
	for i, candidate := range levels {
		if candidate == l {
			return levels[(i+dir+len(levels))%len(levels)]
		}
	}
	return l
}

// View renders the picker.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.th.title.Render("C H O R E Q U E S T"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.th.muted.Render("minigame break"), m.width))
	b.WriteString("\n\n")

	level := fmt.Sprintf("< %s >", m.level.Title())
	b.WriteString(centerText(m.th.label.Render("difficulty ")+m.th.value.Render(level), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		line := item.Title
		if item.Saved {
			line += m.th.notice.Render("  ● saved")
		}
		if i == m.cursor {
			cursor = "> "
			line = m.th.title.Render(item.Title)
			if item.Saved {
				line += m.th.notice.Render("  ● saved")
			}
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "↑↓ navigate · ←→ difficulty · enter play · tab scores · q quit"
	b.WriteString(centerText(m.th.muted.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *MenuItem { return m.selected }

// Level returns the difficulty currently dialed in.
func (m MenuModel) Level() config.Level { return m.level }

// WantsScoreboard reports whether the player asked for the score screen.
func (m MenuModel) WantsScoreboard() bool { return m.openScoreboard }

// IsQuitting reports whether the player asked to leave.
func (m MenuModel) IsQuitting() bool { return m.quitting }
