package session

import (
	"fmt"
	"time"

	"github.com/chorequest/minigames/internal/snapshot"
)

// Keys the session writes into every record; engines add their own payload
// keys next to these.
const (
	keyDifficulty = "difficulty"
	keyScore      = "score"
	keyClock      = "clock"
	keyStarted    = "started"
	keyPaused     = "paused"
)

// Record serializes the full session, generic fields plus engine payload,
// into a flat key/value record. Over sessions are never persisted; the loop
// clears their records instead of writing them.
func (s *Session) Record() snapshot.Record {
	rec := snapshot.New()
	rec.SetLevel(keyDifficulty, s.level)
	rec.SetInt(keyScore, s.score)
	rec.SetInt64(keyClock, s.Clock())
	rec.SetBool(keyStarted, s.status != NotStarted)
	rec.SetBool(keyPaused, s.status == Paused)
	s.eng.Snapshot(rec)
	return rec
}

// RestoreRecord rebuilds the session from a record, re-arming the timer
// when the save was running and unpaused so play resumes exactly where it
// left off. On any error the session is left mid-restore; callers must
// fall back to NewGame, which is the documented read policy for malformed
// records.
func (s *Session) RestoreRecord(rec snapshot.Record) error {
	level, err := rec.Level(keyDifficulty)
	if err != nil {
		return err
	}
	score, err := rec.Int(keyScore)
	if err != nil {
		return err
	}
	if score < 0 {
		return fmt.Errorf("%w: negative score %d", snapshot.ErrMalformed, score)
	}
	clock, err := rec.Int64(keyClock)
	if err != nil {
		return err
	}
	if clock < 0 {
		return fmt.Errorf("%w: negative clock %d", snapshot.ErrMalformed, clock)
	}
	started, err := rec.Bool(keyStarted)
	if err != nil {
		return err
	}
	paused, err := rec.Bool(keyPaused)
	if err != nil {
		return err
	}

	s.cancelTimer()
	s.generation++
	s.level = level

	// Deal a fresh board at the record's difficulty first, so the engine
	// overlays its payload onto correct geometry and can validate against
	// it.
	s.eng.Reset(level, s.rng)
	if err := s.eng.Restore(rec); err != nil {
		return err
	}

	s.score = score
	s.outcome = OutcomeNone
	s.notice = ""
	s.ticks = 0
	s.accumMS = 0
	s.startedAt = time.Time{}
	if s.EventDriven() {
		s.accumMS = clock
	} else {
		s.ticks = clock
	}

	switch {
	case started && !paused:
		s.status = Running
		s.arm()
	case started && paused:
		s.status = Paused
	default:
		s.status = NotStarted
	}
	return nil
}
