// Package session implements the resumable game-session state machine
// shared by every mini-game: status transitions, the per-session tick
// scheduler, snapshotting, and the single-owner loop that serializes all
// access to a live session.
package session

// Status is a session's lifecycle state. The only transitions are
// NotStarted → Running ⇄ Paused → Over; Over is left exclusively through
// NewGame.
type Status int

const (
	NotStarted Status = iota
	Running
	Paused
	Over
)

// String returns the status name for logs and projections.
func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "over"
	}
}

// Outcome says why a session ended. It is OutcomeNone unless status is Over.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeLoss is a defeat: wall or self collision, lives exhausted.
	OutcomeLoss
	// OutcomeWin is a completed game: all pairs matched, puzzle solved,
	// final level cleared, quiz finished.
	OutcomeWin
	// OutcomeBoardFull is the grid-crawler's forced win: the snake fills
	// the board and no cell remains for food.
	OutcomeBoardFull
)

// String returns the outcome name for logs and projections.
func (o Outcome) String() string {
	switch o {
	case OutcomeLoss:
		return "loss"
	case OutcomeWin:
		return "win"
	case OutcomeBoardFull:
		return "board_full"
	default:
		return "none"
	}
}

// Won reports whether the outcome counts as a victory.
func (o Outcome) Won() bool {
	return o == OutcomeWin || o == OutcomeBoardFull
}
