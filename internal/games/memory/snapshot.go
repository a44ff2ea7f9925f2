package memory

import (
	"fmt"

	"github.com/chorequest/minigames/internal/snapshot"
)

// Record keys for the memory payload. Cards are stored as three parallel
// lists over the same index space.
const (
	keySymbols = "symbols"
	keyMatched = "matched"
	keyFaceUp  = "faceup"
	keyMoves   = "moves"
)

// Snapshot writes the payload into rec.
func (e *Engine) Snapshot(rec snapshot.Record) {
	symbols := make([]int, len(e.cards))
	matched := make([]int, len(e.cards))
	faceUp := make([]int, len(e.cards))
	for i, c := range e.cards {
		symbols[i] = c.symbol
		matched[i] = bit(c.matched)
		faceUp[i] = bit(c.faceUp)
	}
	rec.SetInts(keySymbols, symbols)
	rec.SetInts(keyMatched, matched)
	rec.SetInts(keyFaceUp, faceUp)
	rec.SetInt(keyMoves, e.moves)
}

// Restore rebuilds the board from rec. The flip-back one-shot is not
// persisted, so any unmatched face-up cards are normalized face-down:
// restoring them up with no pending flip would lock the board forever.
func (e *Engine) Restore(rec snapshot.Record) error {
	symbols, err := rec.Ints(keySymbols)
	if err != nil {
		return err
	}
	matched, err := rec.Ints(keyMatched)
	if err != nil {
		return err
	}
	faceUp, err := rec.Ints(keyFaceUp)
	if err != nil {
		return err
	}
	moves, err := rec.Int(keyMoves)
	if err != nil {
		return err
	}

	if want := 2 * e.cfg.Pairs.For(e.level); len(symbols) != want {
		return fmt.Errorf("%w: %d cards, expected %d", snapshot.ErrMalformed, len(symbols), want)
	}
	if len(matched) != len(symbols) || len(faceUp) != len(symbols) {
		return fmt.Errorf("%w: card lists disagree on length", snapshot.ErrMalformed)
	}
	if moves < 0 {
		return fmt.Errorf("%w: negative moves %d", snapshot.ErrMalformed, moves)
	}

	// Every symbol must appear exactly twice, and a matched pair must be
	// matched on both cards.
	seen := make(map[int]int)
	matchedBySym := make(map[int]int)
	allMatched := true
	for i, sym := range symbols {
		if matched[i] != 0 && matched[i] != 1 || faceUp[i] != 0 && faceUp[i] != 1 {
			return fmt.Errorf("%w: card %d has non-boolean flags", snapshot.ErrMalformed, i)
		}
		seen[sym]++
		if matched[i] == 1 {
			matchedBySym[sym]++
		} else {
			allMatched = false
		}
	}
	for sym, n := range seen {
		if n != 2 {
			return fmt.Errorf("%w: symbol %d appears %d times", snapshot.ErrMalformed, sym, n)
		}
		if m := matchedBySym[sym]; m != 0 && m != 2 {
			return fmt.Errorf("%w: symbol %d matched on one card only", snapshot.ErrMalformed, sym)
		}
	}
	if allMatched {
		return fmt.Errorf("%w: board already solved", snapshot.ErrMalformed)
	}

	e.cards = make([]card, len(symbols))
	for i, sym := range symbols {
		e.cards[i] = card{
			symbol:  sym,
			matched: matched[i] == 1,
			faceUp:  matched[i] == 1, // matched cards stay revealed
		}
	}
	e.faceUp = nil
	e.moves = moves
	return nil
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}
