package puzzle

import (
	"math/rand"
	"testing"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/session"
	"github.com/chorequest/minigames/internal/snapshot"
)

func newTestGame(level config.Level, seed int64) (*Engine, *session.Session, *session.ManualScheduler) {
	eng := New(config.DefaultPuzzleConfig())
	sched := session.NewManualScheduler()
	s := session.New(eng, session.Options{
		Scheduler: sched,
		Level:     level,
		Rand:      rand.New(rand.NewSource(seed)),
	})
	return eng, s, sched
}

// craft replaces the dealt board for scenario tests.
func craft(eng *Engine, tiles ...int) {
	eng.tiles = tiles
	eng.moves = 0
}

func TestSolvableRule(t *testing.T) {
	tests := []struct {
		name  string
		side  int
		tiles []int
		want  bool
	}{
		{"solved 4x4", 4, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0}, true},
		{"swapped last pair", 4, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 15, 14, 0}, false},
		{"solved 3x3", 3, []int{1, 2, 3, 4, 5, 6, 7, 8, 0}, true},
		{"swapped 3x3", 3, []int{2, 1, 3, 4, 5, 6, 7, 8, 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := solvable(tc.tiles, tc.side); got != tc.want {
				t.Errorf("solvable() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestFreshDealsAreSolvable(t *testing.T) {
	for _, level := range []config.Level{config.Easy, config.Medium, config.Hard} {
		for seed := int64(1); seed <= 30; seed++ {
			eng, _, _ := newTestGame(level, seed)
			if !solvable(eng.tiles, eng.side) {
				t.Fatalf("level %v seed %d dealt an unsolvable board %v", level, seed, eng.tiles)
			}
			if eng.solvedBoard() {
				t.Fatalf("level %v seed %d dealt an already-solved board", level, seed)
			}
			seen := make(map[int]bool)
			for _, v := range eng.tiles {
				if v < 0 || v >= eng.side*eng.side || seen[v] {
					t.Fatalf("level %v seed %d dealt a bad permutation %v", level, seed, eng.tiles)
				}
				seen[v] = true
			}
		}
	}
}

func TestSlideMechanics(t *testing.T) {
	eng, s, _ := newTestGame(config.Medium, 1)
	craft(eng, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)

	// Diagonal neighbor of the blank: rejected, and no implicit start.
	s.SubmitInput(session.PickInput{Index: 5})
	if eng.moves != 0 || s.Status() != session.NotStarted {
		t.Fatal("diagonal pick accepted")
	}

	// Picking the blank itself is rejected.
	s.SubmitInput(session.PickInput{Index: 0})
	if eng.moves != 0 || s.Status() != session.NotStarted {
		t.Fatal("blank pick accepted")
	}

	s.SubmitInput(session.PickInput{Index: 1})
	if s.Status() != session.Running {
		t.Fatalf("status = %v, expected an accepted slide to start play", s.Status())
	}
	if eng.tiles[0] != 1 || eng.tiles[1] != 0 || eng.moves != 1 {
		t.Fatalf("board = %v moves = %d after slide, expected tile 1 moved", eng.tiles, eng.moves)
	}

	// Blank is now at position 1; position 5 sits right below it.
	s.SubmitInput(session.PickInput{Index: 5})
	if eng.tiles[1] != 5 || eng.tiles[5] != 0 || eng.moves != 2 {
		t.Fatalf("board = %v moves = %d, expected tile 5 slid up", eng.tiles, eng.moves)
	}
}

func TestHeadingSlides(t *testing.T) {
	eng, s, _ := newTestGame(config.Medium, 1)
	craft(eng, 1, 2, 3, 4, 5, 0, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)

	// Blank at (1,1): Left slides the tile on its right into it.
	s.SubmitInput(session.DirInput{Heading: core.Left})
	if eng.tiles[5] != 6 || eng.tiles[6] != 0 {
		t.Fatalf("board = %v, expected tile 6 slid left", eng.tiles)
	}

	// Blank at (2,1): Up slides the tile below it.
	s.SubmitInput(session.DirInput{Heading: core.Up})
	if eng.tiles[6] != 10 || eng.tiles[10] != 0 {
		t.Fatalf("board = %v, expected tile 10 slid up", eng.tiles)
	}
	if eng.moves != 2 {
		t.Errorf("moves = %d, expected 2", eng.moves)
	}
}

func TestHeadingOffBoardRejected(t *testing.T) {
	eng, s, _ := newTestGame(config.Medium, 1)
	craft(eng, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)

	// Blank at the top-left corner: no tile can slide down or right.
	s.SubmitInput(session.DirInput{Heading: core.Down})
	s.SubmitInput(session.DirInput{Heading: core.Right})
	if eng.moves != 0 || s.Status() != session.NotStarted {
		t.Fatal("off-board slide accepted")
	}

	s.SubmitInput(session.DirInput{Heading: core.Left})
	if eng.tiles[0] != 1 || eng.tiles[1] != 0 || eng.moves != 1 {
		t.Fatalf("board = %v, expected tile 1 slid left", eng.tiles)
	}
}

func TestSolveEndsSession(t *testing.T) {
	eng, s, sched := newTestGame(config.Medium, 1)
	craft(eng, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15)

	s.SubmitInput(session.PickInput{Index: 15})
	if !eng.solvedBoard() {
		t.Fatalf("board = %v, expected solved", eng.tiles)
	}
	if s.Status() != session.Over {
		t.Fatalf("status = %v, expected Over", s.Status())
	}
	if s.Outcome() != session.OutcomeWin {
		t.Errorf("outcome = %v, expected OutcomeWin", s.Outcome())
	}
	if eng.Moves() != 1 {
		t.Errorf("Moves() = %d, expected 1", eng.Moves())
	}
	if sched.Armed() {
		t.Error("timer armed on a finished session")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	eng, s, _ := newTestGame(config.Medium, 5)

	// Make two legal slides against the real deal.
	for round := 0; round < 2; round++ {
		blank := eng.blankAt()
		moved := false
		for _, pos := range []int{blank - 1, blank + 1, blank - eng.side, blank + eng.side} {
			if pos >= 0 && pos < len(eng.tiles) && adjacent(pos, blank, eng.side) {
				s.SubmitInput(session.PickInput{Index: pos})
				moved = true
				break
			}
		}
		if !moved {
			t.Fatal("no legal slide found")
		}
	}
	if eng.moves != 2 {
		t.Fatalf("moves = %d, expected 2", eng.moves)
	}

	rec := snapshot.New()
	eng.Snapshot(rec)

	eng2, _, _ := newTestGame(config.Medium, 6)
	if err := eng2.Restore(rec); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	for i := range eng.tiles {
		if eng2.tiles[i] != eng.tiles[i] {
			t.Fatalf("tiles = %v after restore, expected %v", eng2.tiles, eng.tiles)
		}
	}
	if eng2.moves != 2 {
		t.Errorf("moves = %d after restore, expected 2", eng2.moves)
	}

	rec2 := snapshot.New()
	eng2.Snapshot(rec2)
	for k, v := range rec {
		if rec2[k] != v {
			t.Errorf("key %q = %q after round trip, expected %q", k, rec2[k], v)
		}
	}
}

func TestRestoreRejectsCorruptRecords(t *testing.T) {
	// One slide away from solved: valid, solvable, not solved.
	base := func() snapshot.Record {
		rec := snapshot.New()
		rec.SetInts("tiles", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15})
		rec.SetInt("moves", 4)
		return rec
	}

	eng, _, _ := newTestGame(config.Medium, 9)
	if err := eng.Restore(base()); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(rec snapshot.Record)
	}{
		{"missing tiles", func(rec snapshot.Record) { delete(rec, "tiles") }},
		{"garbled tiles", func(rec snapshot.Record) { rec["tiles"] = "a,b" }},
		{"wrong size", func(rec snapshot.Record) { rec["tiles"] = "1,2,3" }},
		{"duplicate tile", func(rec snapshot.Record) {
			rec["tiles"] = "2,2,3,4,5,6,7,8,9,10,11,12,13,14,0,15"
		}},
		{"tile out of range", func(rec snapshot.Record) {
			rec["tiles"] = "99,2,3,4,5,6,7,8,9,10,11,12,13,14,0,15"
		}},
		{"unsolvable board", func(rec snapshot.Record) {
			rec["tiles"] = "1,2,3,4,5,6,7,8,9,10,11,12,13,15,14,0"
		}},
		{"already solved", func(rec snapshot.Record) {
			rec["tiles"] = "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,0"
		}},
		{"negative moves", func(rec snapshot.Record) { rec["moves"] = "-1" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := base()
			tc.mutate(rec)
			eng, _, _ := newTestGame(config.Medium, 9)
			if err := eng.Restore(rec); err == nil {
				t.Error("Restore() accepted a corrupt record")
			}
		})
	}
}

func TestDeterministicDeal(t *testing.T) {
	eng1, _, _ := newTestGame(config.Hard, 42)
	eng2, _, _ := newTestGame(config.Hard, 42)
	for i := range eng1.tiles {
		if eng1.tiles[i] != eng2.tiles[i] {
			t.Fatalf("tile %d differs across same-seed deals", i)
		}
	}
}
