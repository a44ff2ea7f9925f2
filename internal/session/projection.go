package session

import "github.com/chorequest/minigames/internal/config"

// Best holds the ledger values for one game at one difficulty. Zero values
// mean "no entry yet".
type Best struct {
	Score  int
	Millis int64
	Moves  int
}

// Absorb folds a finished run into the best marks, keeping each field
// independently and only when strictly better: higher score, lower time,
// fewer moves. A zero time or move count on the result means the game does
// not track that mark.
func (b Best) Absorb(res Result) Best {
	if res.Score > b.Score {
		b.Score = res.Score
	}
	if res.Millis > 0 && (b.Millis == 0 || res.Millis < b.Millis) {
		b.Millis = res.Millis
	}
	if res.Moves > 0 && (b.Moves == 0 || res.Moves < b.Moves) {
		b.Moves = res.Moves
	}
	return b
}

// Result is the terminal outcome fed to the score ledger. Zero fields are
// metrics the game does not track.
type Result struct {
	Score  int
	Millis int64
	Moves  int
}

// Projection is the read-only view of a session pushed to observers on
// every mutation. It exposes every session field the presentation layer
// may show; View carries the game-specific payload.
type Projection struct {
	GameID  string
	Title   string
	Status  Status
	Outcome Outcome
	Level   config.Level
	Score   int
	// Clock is the session clock: ticks, or milliseconds when Millis is set.
	Clock  int64
	Millis bool
	Moves  int
	// Best is the ledger entry for this game and difficulty, filled by the
	// loop when a store is attached.
	Best Best
	// Notice is a transient presentation banner, cleared once delivered.
	Notice string
	View   any
}

// Projection snapshots the session for observers. Best and Notice are
// stamped by the loop, which owns the ledger and the notice lifecycle.
func (s *Session) Projection() Projection {
	return Projection{
		GameID:  s.eng.ID(),
		Title:   s.eng.Title(),
		Status:  s.status,
		Outcome: s.outcome,
		Level:   s.level,
		Score:   s.score,
		Clock:   s.Clock(),
		Millis:  s.EventDriven(),
		Moves:   s.eng.Moves(),
		View:    s.eng.View(),
	}
}
