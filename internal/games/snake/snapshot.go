package snake

import (
	"fmt"

	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/snapshot"
)

// Payload keys, stored next to the generic session fields in one flat
// record.
const (
	keyGrid    = "grid"
	keyBody    = "cells"
	keyDir     = "dir"
	keyPending = "pending"
	keyFood    = "food"
)

// Snapshot writes the full board into the record.
func (e *Engine) Snapshot(rec snapshot.Record) {
	rec.SetInt(keyGrid, e.grid)
	rec.SetCells(keyBody, e.body)
	rec.SetString(keyDir, e.heading.String())
	rec.SetString(keyPending, e.pending.String())
	rec.SetCells(keyFood, []core.Cell{e.food})
}

// Restore overlays a saved board onto a freshly reset engine, validating
// every field. Any inconsistency fails the restore, and the caller falls
// back to a fresh deal.
func (e *Engine) Restore(rec snapshot.Record) error {
	grid, err := rec.Int(keyGrid)
	if err != nil {
		return err
	}
	if grid != e.grid {
		return fmt.Errorf("%w: grid %d does not match the configured %d", snapshot.ErrMalformed, grid, e.grid)
	}

	body, err := rec.Cells(keyBody)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", snapshot.ErrMalformed)
	}
	seen := make(map[core.Cell]bool, len(body))
	for _, c := range body {
		if !c.Inside(grid, grid) {
			return fmt.Errorf("%w: body cell %d,%d out of bounds", snapshot.ErrMalformed, c.X, c.Y)
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate body cell %d,%d", snapshot.ErrMalformed, c.X, c.Y)
		}
		seen[c] = true
	}

	dirRaw, err := rec.Str(keyDir)
	if err != nil {
		return err
	}
	heading, err := core.ParseHeading(dirRaw)
	if err != nil {
		return fmt.Errorf("%w: %v", snapshot.ErrMalformed, err)
	}
	pendingRaw, err := rec.Str(keyPending)
	if err != nil {
		return err
	}
	pending, err := core.ParseHeading(pendingRaw)
	if err != nil {
		return fmt.Errorf("%w: %v", snapshot.ErrMalformed, err)
	}
	if pending == heading.Opposite() {
		return fmt.Errorf("%w: buffered heading reverses the current one", snapshot.ErrMalformed)
	}

	foodCells, err := rec.Cells(keyFood)
	if err != nil {
		return err
	}
	if len(foodCells) != 1 {
		return fmt.Errorf("%w: expected one food cell, got %d", snapshot.ErrMalformed, len(foodCells))
	}
	food := foodCells[0]
	if !food.Inside(grid, grid) || seen[food] {
		return fmt.Errorf("%w: food cell %d,%d unusable", snapshot.ErrMalformed, food.X, food.Y)
	}

	e.body = body
	e.heading = heading
	e.pending = pending
	e.food = food
	return nil
}
