// Package memory implements the tile-matching engine. It is event-driven:
// nothing moves between inputs, so there is no simulation tick, only a
// free-running stopwatch upstream. The one timed behavior, flipping a
// mismatched pair back over, runs as a deferred one-shot.
package memory

import (
	"math/rand"
	"time"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/session"
)

// card is one tile of the board. Matched cards stay revealed for the rest
// of the game; faceUp tracks the at-most-two unmatched cards currently
// turned over.
type card struct {
	symbol  int
	faceUp  bool
	matched bool
}

// Engine holds the tile-matching payload.
type Engine struct {
	cfg   config.MemoryConfig
	level config.Level

	cards  []card
	faceUp []int // indices of face-up unmatched cards, at most two
	moves  int
}

// CardView is one tile as the presentation sees it. Symbol is -1 while the
// card is face-down so observers cannot peek.
type CardView struct {
	Symbol  int
	FaceUp  bool
	Matched bool
}

// View is the read-only projection payload.
type View struct {
	Cols    int
	Rows    int
	Cards   []CardView
	Moves   int
	Pairs   int
	Matched int // matched pair count
}

func init() {
	registry.Register("memory", func(cfg config.Config) session.Engine {
		return New(cfg.Memory)
	})
}

// New creates a memory engine with the given tuning.
func New(cfg config.MemoryConfig) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) ID() string    { return "memory" }
func (e *Engine) Title() string { return "Memory" }

// TickInterval is zero: the board only changes on input.
func (e *Engine) TickInterval(config.Level) time.Duration { return 0 }

// Reset deals a fresh shuffled board for the difficulty.
func (e *Engine) Reset(level config.Level, rng *rand.Rand) {
	e.level = level
	deck := core.ShuffledPairs(rng, e.cfg.Pairs.For(level))
	e.cards = make([]card, len(deck))
	for i, sym := range deck {
		e.cards[i] = card{symbol: sym}
	}
	e.faceUp = nil
	e.moves = 0
}

// Advance is never called: the engine is event-driven.
func (e *Engine) Advance(*session.Ctx) {}

// Apply flips the picked card. Picks are rejected, and do not start a
// session, while the card is matched, already up, or two cards are
// already up; the last rule is what locks the board during the flip-back
// window, since only the deferred flip brings the count back down.
func (e *Engine) Apply(ctx *session.Ctx, in session.Input) bool {
	pick, ok := in.(session.PickInput)
	if !ok {
		return false
	}
	idx := pick.Index
	if idx < 0 || idx >= len(e.cards) {
		return false
	}
	if len(e.faceUp) >= 2 {
		return false
	}
	c := &e.cards[idx]
	if c.matched || c.faceUp {
		return false
	}

	c.faceUp = true
	e.faceUp = append(e.faceUp, idx)
	if len(e.faceUp) < 2 {
		return true
	}

	// Second card of the pair: one completed evaluation either way.
	a, b := e.faceUp[0], e.faceUp[1]
	e.moves++
	if e.cards[a].symbol == e.cards[b].symbol {
		e.cards[a].matched = true
		e.cards[b].matched = true
		e.faceUp = e.faceUp[:0]
		if e.allMatched() {
			ctx.End(session.OutcomeWin)
		}
		return true
	}
	ctx.Defer(e.flipBack(), func() {
		e.cards[a].faceUp = false
		e.cards[b].faceUp = false
		e.faceUp = e.faceUp[:0]
	})
	return true
}

func (e *Engine) Moves() int { return e.moves }

// View returns a copy safe to hand across goroutines.
func (e *Engine) View() any {
	cols := e.cfg.Columns.For(e.level)
	cards := make([]CardView, len(e.cards))
	matched := 0
	for i, c := range e.cards {
		cv := CardView{Symbol: -1, FaceUp: c.faceUp, Matched: c.matched}
		if c.faceUp || c.matched {
			cv.Symbol = c.symbol
		}
		if c.matched {
			matched++
		}
		cards[i] = cv
	}
	return View{
		Cols:    cols,
		Rows:    (len(e.cards) + cols - 1) / cols,
		Cards:   cards,
		Moves:   e.moves,
		Pairs:   len(e.cards) / 2,
		Matched: matched / 2,
	}
}

func (e *Engine) flipBack() time.Duration {
	return time.Duration(e.cfg.FlipBackMS) * time.Millisecond
}

func (e *Engine) allMatched() bool {
	for _, c := range e.cards {
		if !c.matched {
			return false
		}
	}
	return true
}
