package session

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/goleak"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/snapshot"
)

// fakeStore is an in-memory Store. The writer goroutine calls it
// concurrently with test assertions, so every method locks.
type fakeStore struct {
	mu      sync.Mutex
	blobs   map[string]string
	runIDs  map[string]string
	saves   int
	clears  int
	results []Result
	bests   map[config.Level]Best
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blobs:  make(map[string]string),
		runIDs: make(map[string]string),
		bests:  make(map[config.Level]Best),
	}
}

func (st *fakeStore) SaveSession(gameID, runID, blob string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.blobs[gameID] = blob
	st.runIDs[gameID] = runID
	st.saves++
	return nil
}

func (st *fakeStore) LoadSession(gameID string) (string, bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	blob, ok := st.blobs[gameID]
	return blob, ok, nil
}

func (st *fakeStore) ClearSession(gameID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.blobs, gameID)
	st.clears++
	return nil
}

func (st *fakeStore) RecordResult(gameID string, level config.Level, res Result) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.results = append(st.results, res)
	return nil
}

func (st *fakeStore) Bests(gameID string) (map[config.Level]Best, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make(map[config.Level]Best, len(st.bests))
	for k, v := range st.bests {
		out[k] = v
	}
	return out, nil
}

func (st *fakeStore) counts() (saves, clears, results int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.saves, st.clears, len(st.results)
}

func (st *fakeStore) blob(gameID string) (string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	b, ok := st.blobs[gameID]
	return b, ok
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// waitProjection reads frames until one satisfies pred. Intermediate frames
// may be dropped by the latest-wins channel, so only the predicate matters.
func waitProjection(t *testing.T, l *Loop, what string, pred func(Projection) bool) Projection {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case p := <-l.Projections():
			if pred(p) {
				return p
			}
		case <-deadline:
			t.Fatalf("timed out waiting for projection: %s", what)
			return Projection{}
		}
	}
}

// waitFor polls cond until it holds or the deadline passes. Used for store
// effects, which land asynchronously on the writer goroutine.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestLoopLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	eng := &fakeEngine{id: "fake", interval: 5 * time.Millisecond, qualify: true}
	l := NewLoop(eng, LoopConfig{Logger: quietLogger(), Level: config.Medium})
	l.Start()
	defer l.Close()

	p := <-l.Projections()
	if p.Status != NotStarted {
		t.Fatalf("initial status = %v, expected NotStarted", p.Status)
	}

	l.StartGame()
	waitProjection(t, l, "running", func(p Projection) bool { return p.Status == Running })

	l.Pause()
	waitProjection(t, l, "paused", func(p Projection) bool { return p.Status == Paused })

	l.Resume()
	waitProjection(t, l, "resumed", func(p Projection) bool { return p.Status == Running })

	l.NewGame(config.Hard)
	p = waitProjection(t, l, "fresh deal", func(p Projection) bool {
		return p.Status == NotStarted && p.Level == config.Hard
	})
	if p.Score != 0 {
		t.Errorf("score = %d after new game, expected 0", p.Score)
	}
}

func TestLoopTicksAdvanceSimulation(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	eng := &fakeEngine{id: "fake", interval: 2 * time.Millisecond, qualify: true}
	l := NewLoop(eng, LoopConfig{Logger: quietLogger(), Level: config.Easy})
	l.Start()
	defer l.Close()

	l.Submit(DirInput{Heading: core.Right}) // qualifying input starts play
	waitProjection(t, l, "ticks flowing", func(p Projection) bool {
		return p.Status == Running && p.Clock >= 3
	})
}

func TestLoopPauseWritesSnapshot(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	eng := &fakeEngine{id: "fake", interval: time.Minute, qualify: true}
	l := NewLoop(eng, LoopConfig{Store: st, Logger: quietLogger(), Level: config.Medium})
	l.Start()
	defer l.Close()

	l.StartGame()
	waitProjection(t, l, "running", func(p Projection) bool { return p.Status == Running })
	l.Pause()
	waitProjection(t, l, "paused", func(p Projection) bool { return p.Status == Paused })

	waitFor(t, "pause snapshot", func() bool {
		saves, _, _ := st.counts()
		return saves >= 1
	})

	blob, ok := st.blob("fake")
	if !ok {
		t.Fatal("no saved blob after pause")
	}
	rec, err := snapshot.Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if started, _ := rec.Bool("started"); !started {
		t.Error("saved record not marked started")
	}
	if paused, _ := rec.Bool("paused"); !paused {
		t.Error("saved record not marked paused")
	}
}

func TestLoopFinishRecordsResultAndClearsSave(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	st.bests[config.Medium] = Best{Score: 5}
	eng := &fakeEngine{
		id:       "fake",
		interval: 2 * time.Millisecond,
		qualify:  true,
		endOn:    3,
	}
	eng.endOutcome = OutcomeLoss
	eng.applyFn = func(ctx *Ctx, in Input) bool {
		ctx.AddScore(40)
		return true
	}
	l := NewLoop(eng, LoopConfig{Store: st, Logger: quietLogger(), Level: config.Medium})
	l.Start()
	defer l.Close()

	l.Submit(DirInput{Heading: core.Up})
	p := waitProjection(t, l, "game over", func(p Projection) bool { return p.Status == Over })
	if p.Outcome != OutcomeLoss {
		t.Errorf("outcome = %v, expected OutcomeLoss", p.Outcome)
	}
	if p.Best.Score != 40 {
		t.Errorf("projected best = %d, expected the finished run's 40", p.Best.Score)
	}

	waitFor(t, "ledger write and clear", func() bool {
		_, clears, results := st.counts()
		return results >= 1 && clears >= 1
	})
	st.mu.Lock()
	res := st.results[0]
	st.mu.Unlock()
	if res.Score != 40 {
		t.Errorf("recorded score = %d, expected 40", res.Score)
	}
	if _, ok := st.blob("fake"); ok {
		t.Error("terminal session left a saved blob behind")
	}
}

func TestLoopRestoresRunningSave(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	rec := snapshot.Record{
		"difficulty": "hard",
		"score":      "30",
		"clock":      "2",
		"started":    "true",
		"paused":     "false",
		"payload":    "saved",
	}
	blob, err := snapshot.Encode(rec)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	st.blobs["fake"] = blob

	eng := &fakeEngine{id: "fake", interval: 2 * time.Millisecond, qualify: true}
	l := NewLoop(eng, LoopConfig{Store: st, Logger: quietLogger(), Level: config.Easy})
	l.Start()
	defer l.Close()

	// The restored session keeps its own difficulty and resumes ticking
	// without any player action.
	waitProjection(t, l, "restored session running", func(p Projection) bool {
		return p.Status == Running && p.Level == config.Hard && p.Score == 30 && p.Clock > 2
	})
	if eng.payload != "saved" {
		t.Errorf("payload = %q, expected restore to rebuild it", eng.payload)
	}
}

func TestLoopDiscardsMalformedSave(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	st.blobs["fake"] = "score: [not, a, scalar\n"

	eng := &fakeEngine{id: "fake", interval: time.Minute, qualify: true}
	l := NewLoop(eng, LoopConfig{Store: st, Logger: quietLogger(), Level: config.Medium})
	l.Start()
	defer l.Close()

	p := <-l.Projections()
	if p.Status != NotStarted {
		t.Errorf("status = %v, expected a fresh NotStarted deal", p.Status)
	}
	if p.Level != config.Medium {
		t.Errorf("level = %v, expected the configured Medium", p.Level)
	}
	waitFor(t, "malformed save cleared", func() bool {
		_, clears, _ := st.counts()
		return clears >= 1
	})
}

func TestLoopBackgroundSave(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	eng := &fakeEngine{id: "fake", interval: time.Minute, qualify: true}
	l := NewLoop(eng, LoopConfig{Store: st, Logger: quietLogger(), Level: config.Medium})
	l.Start()
	defer l.Close()

	l.StartGame()
	waitProjection(t, l, "running", func(p Projection) bool { return p.Status == Running })
	l.Background()
	waitFor(t, "background snapshot", func() bool {
		saves, _, _ := st.counts()
		return saves >= 1
	})
}

func TestLoopBackgroundSkipsUntouchedBoard(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	eng := &fakeEngine{id: "fake", interval: time.Minute, qualify: true}
	l := NewLoop(eng, LoopConfig{Store: st, Logger: quietLogger(), Level: config.Medium})
	l.Start()

	l.Background()
	l.Close() // drains the writer before returning

	saves, _, _ := st.counts()
	if saves != 0 {
		t.Errorf("saves = %d, expected none for a NotStarted board", saves)
	}
}

func TestLoopAutosaveWhileRunning(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	eng := &fakeEngine{id: "fake", interval: 2 * time.Millisecond, qualify: true}
	l := NewLoop(eng, LoopConfig{
		Store:    st,
		Logger:   quietLogger(),
		Level:    config.Medium,
		Autosave: 10 * time.Millisecond,
	})
	l.Start()
	defer l.Close()

	l.StartGame()
	waitFor(t, "periodic autosaves", func() bool {
		saves, _, _ := st.counts()
		return saves >= 2
	})
}

func TestLoopCloseWritesFinalSave(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	eng := &fakeEngine{id: "fake", interval: time.Minute, qualify: true}
	l := NewLoop(eng, LoopConfig{Store: st, Logger: quietLogger(), Level: config.Medium})
	l.Start()

	l.StartGame()
	waitProjection(t, l, "running", func(p Projection) bool { return p.Status == Running })
	l.Close()

	// Close drains the writer, so the final snapshot is durable by now.
	blob, ok := st.blob("fake")
	if !ok {
		t.Fatal("no blob after close")
	}
	rec, err := snapshot.Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if started, _ := rec.Bool("started"); !started {
		t.Error("final save not marked started")
	}
	if paused, _ := rec.Bool("paused"); paused {
		t.Error("final save marked paused; restore should re-arm the timer")
	}
}

func TestLoopCloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	eng := &fakeEngine{id: "fake", interval: time.Minute, qualify: true}
	l := NewLoop(eng, LoopConfig{Logger: quietLogger(), Level: config.Medium})
	l.Start()
	l.Close()
	l.Close()
}

func TestLoopBestsSurviveNewGame(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := newFakeStore()
	st.bests[config.Medium] = Best{Score: 90, Moves: 12}
	eng := &fakeEngine{id: "fake", interval: time.Minute, qualify: true}
	l := NewLoop(eng, LoopConfig{Store: st, Logger: quietLogger(), Level: config.Medium})
	l.Start()
	defer l.Close()

	p := <-l.Projections()
	if p.Best.Score != 90 {
		t.Fatalf("best = %d, expected the ledger's 90", p.Best.Score)
	}

	l.NewGame(config.Medium)
	p = waitProjection(t, l, "fresh deal", func(p Projection) bool { return p.Status == NotStarted })
	if p.Best.Score != 90 {
		t.Errorf("best = %d after new game, expected 90 to persist", p.Best.Score)
	}
}

func TestAbsorbBestStrictlyBetter(t *testing.T) {
	eng := &fakeEngine{id: "fake", interval: time.Minute}
	l := NewLoop(eng, LoopConfig{Logger: quietLogger(), Level: config.Medium})
	l.bests[config.Medium] = Best{Score: 100, Millis: 5000, Moves: 20}

	l.absorbBest(config.Medium, Result{Score: 90, Millis: 6000, Moves: 25})
	if b := l.bests[config.Medium]; b != (Best{Score: 100, Millis: 5000, Moves: 20}) {
		t.Errorf("worse result mutated best: %+v", b)
	}

	l.absorbBest(config.Medium, Result{Score: 120, Millis: 4000, Moves: 18})
	if b := l.bests[config.Medium]; b != (Best{Score: 120, Millis: 4000, Moves: 18}) {
		t.Errorf("better result not absorbed: %+v", b)
	}

	// First finished run on an empty slot takes every field.
	l.absorbBest(config.Hard, Result{Score: 10, Millis: 9000, Moves: 40})
	if b := l.bests[config.Hard]; b != (Best{Score: 10, Millis: 9000, Moves: 40}) {
		t.Errorf("first result not absorbed: %+v", b)
	}
}
