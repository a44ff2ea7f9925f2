package tui

import "strings"

// canvas is a 2D cell buffer the grid-board views draw into. It decouples
// board drawing from styling: views place runes with a palette index, and
// render emits each row with runs of same-styled cells grouped so the
// output stays small.
type canvas struct {
	w, h   int
	runes  []rune
	styles []int
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		w:      w,
		h:      h,
		runes:  make([]rune, w*h),
		styles: make([]int, w*h),
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

// set places a styled rune. Out-of-bounds coordinates are ignored, so
// views can draw moving pieces without clamping first.
func (c *canvas) set(x, y int, r rune, style int) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.styles[y*c.w+x] = style
}

// hline draws length copies of r starting at (x, y).
func (c *canvas) hline(x, y, length int, r rune, style int) {
	for i := 0; i < length; i++ {
		c.set(x+i, y, r, style)
	}
}

// render flattens the buffer into a styled string.
func (c *canvas) render(th theme) string {
	var sb strings.Builder
	sb.Grow(c.w*c.h + c.h)

	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < c.w {
			start := c.styles[y*c.w+x]
			var run strings.Builder
			for x < c.w && c.styles[y*c.w+x] == start {
				run.WriteRune(c.runes[y*c.w+x])
				x++
			}
			if start == styDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(th.pal[start].Render(run.String()))
		}
	}
	return sb.String()
}
