package tui

import "github.com/charmbracelet/lipgloss"

// Palette indices for canvas cells. The canvas groups runs of cells that
// share an index, so adjacent board cells cost one escape sequence.
const (
	styDefault = iota
	stySnakeHead
	stySnakeBody
	styFood
	styPaddle
	styBall
	styBrick0
	styBrick1
	styBrick2
	styBrick3
)

// theme bundles every style the views use. One value is built per model
// so SSH sessions do not share mutable style state.
type theme struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	notice  lipgloss.Style
	overlay lipgloss.Style
	board   lipgloss.Style

	cardBack    lipgloss.Style
	cardFace    lipgloss.Style
	cardMatched lipgloss.Style
	cursor      lipgloss.Style
	tile        lipgloss.Style
	blank       lipgloss.Style
	choice      lipgloss.Style
	good        lipgloss.Style
	bad         lipgloss.Style

	pal []lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		notice:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		overlay: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),

		cardBack:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		cardFace:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		cardMatched: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		cursor:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		tile:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		blank:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		choice:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		good:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		bad:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		pal: []lipgloss.Style{
			styDefault:   lipgloss.NewStyle(),
			stySnakeHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
			stySnakeBody: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			styFood:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			styPaddle:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			styBall:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
			styBrick0:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			styBrick1:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
			styBrick2:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			styBrick3:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		},
	}
}

// brickStyle maps a brick color index onto the four-band palette.
func brickStyle(color int) int {
	return styBrick0 + color%4
}
