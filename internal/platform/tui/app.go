package tui

import (
	"io"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/session"
	"github.com/chorequest/minigames/internal/storage"
)

type appMode int

const (
	modeMenu appMode = iota
	modeGame
	modeScores
)

// AppOptions tunes a terminal app instance.
type AppOptions struct {
	// Logger receives loop events. Nil discards them, which keeps the
	// alternate screen clean for local play.
	Logger *log.Logger
	// Level is the difficulty the picker starts on.
	Level config.Level
	// Seed pins board generation for reproducible runs. Zero seeds from
	// the clock per game.
	Seed int64
	// GameID skips the picker and plays one game; quitting it exits.
	GameID string
	// Width and Height are the initial terminal dimensions.
	Width, Height int
}

// AppModel runs the full session flow: picker → game → picker, with the
// score screen reachable from the picker. Local play and every SSH
// connection each mount their own instance.
type AppModel struct {
	cfg    config.Config
	store  *storage.Store
	logger *log.Logger
	seed   int64

	mode   appMode
	menu   MenuModel
	game   *GameModel
	scores ScoreboardModel

	width    int
	height   int
	single   bool
	quitting bool
}

// NewApp assembles the top-level model. With AppOptions.GameID set the
// model starts inside that game and never shows the picker.
func NewApp(cfg config.Config, store *storage.Store, opts AppOptions) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	m := AppModel{
		cfg:    cfg,
		store:  store,
		logger: logger,
		seed:   opts.Seed,
		menu:   NewMenuModel(store, opts.Level, width, height),
		width:  width,
		height: height,
		single: opts.GameID != "",
	}
	if m.single {
		m.startGame(opts.GameID, opts.Level)
	}
	return m
}

// startGame spins up a loop for the game and switches to it.
func (m *AppModel) startGame(gameID string, level config.Level) tea.Cmd {
	eng, err := registry.Create(gameID, m.cfg)
	if err != nil {
		m.logger.Error("cannot create engine", "game", gameID, "err", err)
		m.quitting = true
		return tea.Quit
	}
	var rng *rand.Rand
	if m.seed != 0 {
		rng = rand.New(rand.NewSource(m.seed))
	}
	loopCfg := session.LoopConfig{
		Logger: m.logger,
		Level:  level,
		Rand:   rng,
	}
	// A nil *storage.Store must stay a nil interface, or the loop would
	// call methods on it.
	if m.store != nil {
		loopCfg.Store = m.store
	}
	loop := session.NewLoop(eng, loopCfg)
	loop.Start()

	g := NewGameModel(loop, gameID, m.width, m.height)
	m.game = &g
	m.mode = modeGame
	return g.Init()
}

// closeGame shuts the live loop down, flushing its final save.
func (m *AppModel) closeGame() {
	if m.game != nil {
		m.game.loop.Close()
		m.game = nil
	}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	if m.mode == modeGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update dispatches to whichever screen owns the terminal.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if mm, ok := newMenu.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.store, m.width, m.height)
		m.mode = modeScores
		return m, m.scores.Init()
	}
	if selected := m.menu.Selected(); selected != nil {
		return m, m.startGame(selected.GameID, m.menu.Level())
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.game == nil {
		return m, nil
	}
	newGame, cmd := m.game.Update(msg)
	if gm, ok := newGame.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.closeGame()
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.closeGame()
		if m.single {
			m.quitting = true
			return m, tea.Quit
		}
		m.menu.reload(m.store)
		m.mode = modeMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if sm, ok := newScores.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.menu.reload(m.store)
		m.mode = modeMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeGame:
		if m.game != nil {
			return m.game.View()
		}
		return ""
	case modeScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Run starts the local terminal app and blocks until it exits.
func Run(cfg config.Config, store *storage.Store, opts AppOptions) error {
	app := NewApp(cfg, store, opts)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()

	// The loop is normally closed on the way out; a crashed program still
	// needs its final save flushed.
	if a, ok := final.(AppModel); ok {
		a.closeGame()
	}
	return err
}
