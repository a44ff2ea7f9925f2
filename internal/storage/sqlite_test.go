package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSessionSlot(t *testing.T) {
	store := openTestStore(t)

	// Empty slot reads as absent.
	_, ok, err := store.LoadSession("snake")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if ok {
		t.Error("LoadSession() reported a save in an empty database")
	}

	if err := store.SaveSession("snake", "run-1", "blob-one"); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	blob, ok, err := store.LoadSession("snake")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if !ok || blob != "blob-one" {
		t.Errorf("LoadSession() = %q, %v, expected blob-one", blob, ok)
	}

	// A newer save overwrites the slot; one slot exists per game.
	if err := store.SaveSession("snake", "run-2", "blob-two"); err != nil {
		t.Fatalf("SaveSession() overwrite failed: %v", err)
	}
	blob, _, err = store.LoadSession("snake")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if blob != "blob-two" {
		t.Errorf("LoadSession() = %q after overwrite, expected blob-two", blob)
	}

	saves, err := store.Saves()
	if err != nil {
		t.Fatalf("Saves() failed: %v", err)
	}
	if len(saves) != 1 {
		t.Fatalf("Saves() returned %d slots, expected 1", len(saves))
	}
	if saves["snake"].RunID != "run-2" {
		t.Errorf("run id = %q, expected run-2", saves["snake"].RunID)
	}
	if saves["snake"].UpdatedAt.IsZero() {
		t.Error("save timestamp not recorded")
	}

	if err := store.ClearSession("snake"); err != nil {
		t.Fatalf("ClearSession() failed: %v", err)
	}
	_, ok, err = store.LoadSession("snake")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if ok {
		t.Error("save survived ClearSession()")
	}

	// Clearing an already empty slot is fine.
	if err := store.ClearSession("snake"); err != nil {
		t.Errorf("ClearSession() on empty slot failed: %v", err)
	}
}

func TestStoreSessionSlotsAreIndependent(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession("snake", "r1", "snake-blob")
	store.SaveSession("memory", "r2", "memory-blob")

	if err := store.ClearSession("snake"); err != nil {
		t.Fatalf("ClearSession() failed: %v", err)
	}

	blob, ok, err := store.LoadSession("memory")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if !ok || blob != "memory-blob" {
		t.Error("clearing snake touched the memory slot")
	}
}

func TestStoreLedgerStrictlyBetter(t *testing.T) {
	store := openTestStore(t)

	first := session.Result{Score: 100, Millis: 60000, Moves: 30}
	if err := store.RecordResult("memory", config.Easy, first); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}

	bests, err := store.Bests("memory")
	if err != nil {
		t.Fatalf("Bests() failed: %v", err)
	}
	if b := bests[config.Easy]; b != (session.Best{Score: 100, Millis: 60000, Moves: 30}) {
		t.Fatalf("first result not recorded: %+v", b)
	}

	// A worse run leaves every mark alone.
	worse := session.Result{Score: 40, Millis: 90000, Moves: 50}
	if err := store.RecordResult("memory", config.Easy, worse); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}
	bests, _ = store.Bests("memory")
	if b := bests[config.Easy]; b != (session.Best{Score: 100, Millis: 60000, Moves: 30}) {
		t.Errorf("worse run mutated the ledger: %+v", b)
	}

	// Marks improve independently: faster but lower-scoring keeps the old
	// score and takes the new time.
	mixed := session.Result{Score: 80, Millis: 45000, Moves: 40}
	if err := store.RecordResult("memory", config.Easy, mixed); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}
	bests, _ = store.Bests("memory")
	if b := bests[config.Easy]; b != (session.Best{Score: 100, Millis: 45000, Moves: 30}) {
		t.Errorf("independent marks not applied: %+v", b)
	}
}

func TestStoreLedgerZeroMetricsIgnored(t *testing.T) {
	store := openTestStore(t)

	// Tick-driven games report no time and no moves; zeros must not be
	// treated as record-setting values.
	if err := store.RecordResult("snake", config.Medium, session.Result{Score: 120}); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}
	if err := store.RecordResult("snake", config.Medium, session.Result{Score: 90}); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}

	bests, err := store.Bests("snake")
	if err != nil {
		t.Fatalf("Bests() failed: %v", err)
	}
	if b := bests[config.Medium]; b != (session.Best{Score: 120}) {
		t.Errorf("ledger = %+v, expected score 120 with no time or moves", b)
	}
}

func TestStoreBestsPerDifficulty(t *testing.T) {
	store := openTestStore(t)

	store.RecordResult("snake", config.Easy, session.Result{Score: 50})
	store.RecordResult("snake", config.Hard, session.Result{Score: 200})
	store.RecordResult("breakout", config.Easy, session.Result{Score: 999})

	bests, err := store.Bests("snake")
	if err != nil {
		t.Fatalf("Bests() failed: %v", err)
	}
	if len(bests) != 2 {
		t.Fatalf("Bests() returned %d entries, expected 2", len(bests))
	}
	if bests[config.Easy].Score != 50 {
		t.Errorf("easy best = %d, expected 50", bests[config.Easy].Score)
	}
	if bests[config.Hard].Score != 200 {
		t.Errorf("hard best = %d, expected 200", bests[config.Hard].Score)
	}
	if _, ok := bests[config.Medium]; ok {
		t.Error("medium entry exists without a finished run")
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if err := store.RecordResult("quiz", config.Medium, session.Result{Score: (i + 1) * 10}); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}
	store.RecordResult("snake", config.Easy, session.Result{Score: 7})

	entries, err := store.RecentResults("quiz", 3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("RecentResults() returned %d entries, expected 3", len(entries))
	}
	// Newest first.
	if entries[0].Score != 50 || entries[1].Score != 40 || entries[2].Score != 30 {
		t.Errorf("results not in recency order: %v, %v, %v",
			entries[0].Score, entries[1].Score, entries[2].Score)
	}
	if entries[0].GameID != "quiz" || entries[0].Difficulty != "medium" {
		t.Errorf("entry identity = %s/%s", entries[0].GameID, entries[0].Difficulty)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.RecordResult("snake", config.Easy, session.Result{Score: 100})
	store.RecordResult("breakout", config.Easy, session.Result{Score: 300})

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	bests, _ := store.Bests("snake")
	if len(bests) != 0 {
		t.Errorf("snake ledger survived ClearScores(): %v", bests)
	}
	results, _ := store.RecentResults("snake", 10)
	if len(results) != 0 {
		t.Errorf("snake history survived ClearScores(): %v", results)
	}

	bests, _ = store.Bests("breakout")
	if bests[config.Easy].Score != 300 {
		t.Error("breakout ledger should not be affected by clearing snake")
	}
}

func TestStoreResetAll(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession("snake", "r1", "blob")
	store.RecordResult("snake", config.Easy, session.Result{Score: 10})
	store.RecordResult("memory", config.Hard, session.Result{Score: 20, Millis: 1000, Moves: 9})

	if err := store.ResetAll(); err != nil {
		t.Fatalf("ResetAll() failed: %v", err)
	}

	if _, ok, _ := store.LoadSession("snake"); ok {
		t.Error("save survived ResetAll()")
	}
	if bests, _ := store.Bests("memory"); len(bests) != 0 {
		t.Error("ledger survived ResetAll()")
	}
	if results, _ := store.RecentResults("snake", 10); len(results) != 0 {
		t.Error("history survived ResetAll()")
	}
}
