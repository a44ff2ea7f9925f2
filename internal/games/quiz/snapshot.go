package quiz

import (
	"fmt"

	"github.com/chorequest/minigames/internal/snapshot"
)

// Payload keys.
const (
	keyOrder   = "order"
	keyIndex   = "index"
	keyCorrect = "correct"
)

// Snapshot writes the dealt order and grading progress. Prompts and
// choices are not persisted; the order indexes the embedded deck.
func (e *Engine) Snapshot(rec snapshot.Record) {
	rec.SetInts(keyOrder, e.order)
	rec.SetInt(keyIndex, e.index)
	rec.SetInt(keyCorrect, e.correct)
}

// Restore rebuilds a round from a record. The order must be a duplicate-free
// deal inside the embedded deck, sized for the current difficulty. Records
// holding an already finished round are rejected: the session ends the
// moment the deck runs out, so a live save always has questions left.
func (e *Engine) Restore(rec snapshot.Record) error {
	order, err := rec.Ints(keyOrder)
	if err != nil {
		return err
	}
	index, err := rec.Int(keyIndex)
	if err != nil {
		return err
	}
	correct, err := rec.Int(keyCorrect)
	if err != nil {
		return err
	}

	if len(order) != len(e.order) {
		return fmt.Errorf("%w: round of %d questions, expected %d", snapshot.ErrMalformed, len(order), len(e.order))
	}
	seen := make(map[int]bool, len(order))
	for _, qi := range order {
		if qi < 0 || qi >= len(deck) {
			return fmt.Errorf("%w: question %d outside the deck", snapshot.ErrMalformed, qi)
		}
		if seen[qi] {
			return fmt.Errorf("%w: question %d dealt twice", snapshot.ErrMalformed, qi)
		}
		seen[qi] = true
	}
	if index < 0 || index >= len(order) {
		return fmt.Errorf("%w: question index %d out of range", snapshot.ErrMalformed, index)
	}
	if correct < 0 || correct > index {
		return fmt.Errorf("%w: %d correct out of %d answered", snapshot.ErrMalformed, correct, index)
	}

	e.order = order
	e.index = index
	e.correct = correct
	return nil
}
