package registry

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/session"
	"github.com/chorequest/minigames/internal/snapshot"
)

type stubEngine struct {
	id    string
	title string
}

func (e *stubEngine) ID() string                              { return e.id }
func (e *stubEngine) Title() string                           { return e.title }
func (e *stubEngine) TickInterval(config.Level) time.Duration { return 0 }
func (e *stubEngine) Reset(config.Level, *rand.Rand)          {}
func (e *stubEngine) Advance(*session.Ctx)                    {}
func (e *stubEngine) Apply(*session.Ctx, session.Input) bool  { return false }
func (e *stubEngine) Moves() int                              { return 0 }
func (e *stubEngine) Snapshot(snapshot.Record)                {}
func (e *stubEngine) Restore(snapshot.Record) error           { return nil }
func (e *stubEngine) View() any                               { return nil }

func stubFactory(id, title string) Factory {
	return func(config.Config) session.Engine {
		return &stubEngine{id: id, title: title}
	}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("reg-test-a", stubFactory("reg-test-a", "Alpha"))

	if !Exists("reg-test-a") {
		t.Error("Exists() = false for a registered game")
	}

	eng, err := Create("reg-test-a", config.Defaults())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if eng.ID() != "reg-test-a" {
		t.Errorf("engine ID = %q, expected reg-test-a", eng.ID())
	}

	// Each Create call builds a distinct instance.
	other, err := Create("reg-test-a", config.Defaults())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if eng == other {
		t.Error("Create() returned the same instance twice")
	}
}

func TestCreateUnknownGame(t *testing.T) {
	if _, err := Create("no-such-game", config.Defaults()); err == nil {
		t.Error("Create() accepted an unknown game id")
	}
	if Exists("no-such-game") {
		t.Error("Exists() = true for an unknown game id")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("reg-test-dup", stubFactory("reg-test-dup", "Dup"))

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() did not panic")
		}
	}()
	Register("reg-test-dup", stubFactory("reg-test-dup", "Dup"))
}

func TestListSortedWithTitles(t *testing.T) {
	Register("reg-test-z", stubFactory("reg-test-z", "Zeta"))
	Register("reg-test-b", stubFactory("reg-test-b", "Beta"))

	infos := List()
	pos := make(map[string]int, len(infos))
	for i, info := range infos {
		pos[info.ID] = i
		if info.ID == "reg-test-z" && info.Title != "Zeta" {
			t.Errorf("title = %q, expected Zeta", info.Title)
		}
	}
	zb, ok1 := pos["reg-test-b"]
	zz, ok2 := pos["reg-test-z"]
	if !ok1 || !ok2 {
		t.Fatal("registered games missing from List()")
	}
	if zb > zz {
		t.Error("List() not sorted by ID")
	}
}
