package tui

import "github.com/charmbracelet/bubbles/key"

// gameKeyMap holds the session-chrome bindings shared by every game. The
// movement bindings live with each view, since they differ per game.
type gameKeyMap struct {
	Pause      key.Binding
	New        key.Binding
	Difficulty key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns the bindings for the one-line help view.
func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.New, k.Difficulty, k.Back}
}

// FullHelp returns the bindings for the expanded help view.
func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.New, k.Difficulty},
		{k.Back, k.Quit},
	}
}

func defaultGameKeyMap() gameKeyMap {
	return gameKeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("e", "m", "h"),
			key.WithHelp("e/m/h", "difficulty"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuAction is a game-picker action derived from a key press.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionPrevLevel
	MenuActionNextLevel
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// menuAction translates a key string to a menu action.
func menuAction(keyStr string) MenuAction {
	switch keyStr {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionPrevLevel
	case "d", "right", "l":
		return MenuActionNextLevel
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
