package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/snapshot"
)

// defaultAutosave is how much running play may elapse between opportunistic
// background writes.
const defaultAutosave = 10 * time.Second

// Store is the narrow persistence surface the loop needs: an opaque blob
// per game id plus the best-score ledger. The sqlite store satisfies it.
type Store interface {
	SaveSession(gameID, runID, blob string) error
	LoadSession(gameID string) (blob string, ok bool, err error)
	ClearSession(gameID string) error
	RecordResult(gameID string, level config.Level, res Result) error
	Bests(gameID string) (map[config.Level]Best, error)
}

// LoopConfig configures a session loop.
type LoopConfig struct {
	// Store persists snapshots and ledger results. Nil plays ephemerally.
	Store Store
	// Logger for transition and persistence events. Nil uses the default.
	Logger *log.Logger
	// Level is the starting difficulty for a fresh session. A restored
	// save keeps its own difficulty.
	Level config.Level
	// Rand seeds board generation. Nil seeds from the clock.
	Rand *rand.Rand
	// Autosave overrides the 10s background-write cadence.
	Autosave time.Duration
}

// Loop owns one live session. Exactly one goroutine, the loop's, reads
// and mutates the session; inputs, control requests, timer fires, and the
// background signal all arrive as messages on one channel, so the session
// itself needs no locking. Persistence runs on a separate writer goroutine
// and never blocks a transition.
type Loop struct {
	eng      Engine
	sess     *Session
	store    Store
	logger   *log.Logger
	level    config.Level
	rng      *rand.Rand
	autosave time.Duration

	runID    string
	bests    map[config.Level]Best
	lastSave time.Time

	msgs      chan loopMsg
	saves     chan saveOp
	projs     chan Projection
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type loopMsg interface{ isLoopMsg() }

type inputMsg struct{ in Input }
type startMsg struct{}
type pauseMsg struct{}
type resumeMsg struct{}
type newGameMsg struct{ level config.Level }
type backgroundMsg struct{}
type fireMsg struct{ fn func() }
type closeMsg struct{}

func (inputMsg) isLoopMsg()      {}
func (startMsg) isLoopMsg()      {}
func (pauseMsg) isLoopMsg()      {}
func (resumeMsg) isLoopMsg()     {}
func (newGameMsg) isLoopMsg()    {}
func (backgroundMsg) isLoopMsg() {}
func (fireMsg) isLoopMsg()       {}
func (closeMsg) isLoopMsg()      {}

type saveKind int

const (
	opSave saveKind = iota
	opClear
	opResult
)

type saveOp struct {
	kind   saveKind
	runID  string
	blob   string
	level  config.Level
	result Result
}

// NewLoop builds a loop around an engine. Call Start to bring it to life.
func NewLoop(eng Engine, cfg LoopConfig) *Loop {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	autosave := cfg.Autosave
	if autosave <= 0 {
		autosave = defaultAutosave
	}
	return &Loop{
		eng:      eng,
		store:    cfg.Store,
		logger:   logger.With("game", eng.ID()),
		level:    cfg.Level,
		rng:      cfg.Rand,
		autosave: autosave,
		runID:    uuid.NewString(),
		bests:    make(map[config.Level]Best),
		msgs:     make(chan loopMsg, 64),
		saves:    make(chan saveOp, 16),
		projs:    make(chan Projection, 1),
		done:     make(chan struct{}),
	}
}

// Start deals (or restores) the session and begins processing. The first
// projection is available as soon as Start returns.
func (l *Loop) Start() {
	l.sess = New(l.eng, Options{Scheduler: l, Level: l.level, Rand: l.rng})
	if l.store != nil {
		l.loadBests()
		l.restore()
	}
	l.push()
	l.wg.Add(2)
	go l.run()
	go l.saver()
}

// Close requests a final background save, stops the timers, and waits for
// the loop and writer goroutines to drain. Idempotent, but only valid
// after Start. The loop cannot be reused afterwards.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.msgs <- closeMsg{}
		l.wg.Wait()
	})
}

// Projections returns the observer channel. It always holds the latest
// projection; stale intermediate frames are dropped rather than queued.
func (l *Loop) Projections() <-chan Projection {
	return l.projs
}

// NewGame requests a fresh deal at the given difficulty.
func (l *Loop) NewGame(level config.Level) { l.post(newGameMsg{level: level}) }

// StartGame requests the NotStarted → Running transition.
func (l *Loop) StartGame() { l.post(startMsg{}) }

// Pause requests Running → Paused, which also writes a snapshot.
func (l *Loop) Pause() { l.post(pauseMsg{}) }

// Resume requests Paused → Running.
func (l *Loop) Resume() { l.post(resumeMsg{}) }

// Submit delivers one player input.
func (l *Loop) Submit(in Input) { l.post(inputMsg{in: in}) }

// Background signals that the host app is being backgrounded and the
// session should be persisted opportunistically.
func (l *Loop) Background() { l.post(backgroundMsg{}) }

func (l *Loop) post(msg loopMsg) {
	select {
	case l.msgs <- msg:
	case <-l.done:
	}
}

// Repeat implements Scheduler. Fires are posted as messages so they run on
// the loop goroutine, serialized with every other session access.
func (l *Loop) Repeat(interval time.Duration, fire func()) TimerHandle {
	t := newLoopTimer()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.post(fireMsg{fn: fire})
			case <-t.stopped:
				return
			}
		}
	}()
	return t
}

// Once implements Scheduler.
func (l *Loop) Once(delay time.Duration, fire func()) TimerHandle {
	t := newLoopTimer()
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			l.post(fireMsg{fn: fire})
		case <-t.stopped:
		}
	}()
	return t
}

type loopTimer struct {
	stopped  chan struct{}
	stopOnce sync.Once
}

func newLoopTimer() *loopTimer {
	return &loopTimer{stopped: make(chan struct{})}
}

func (t *loopTimer) Stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}

func (l *Loop) run() {
	defer l.wg.Done()
	for msg := range l.msgs {
		if l.handle(msg) {
			return
		}
	}
}

// handle applies one message to the session. Returns true on shutdown.
func (l *Loop) handle(msg loopMsg) bool {
	before := l.sess.Status()

	switch m := msg.(type) {
	case inputMsg:
		l.sess.SubmitInput(m.in)
	case startMsg:
		l.sess.Start()
	case pauseMsg:
		l.sess.Pause()
		if before == Running && l.sess.Status() == Paused {
			l.postSave()
		}
	case resumeMsg:
		l.sess.Resume()
	case newGameMsg:
		l.sess.NewGame(m.level)
		l.runID = uuid.NewString()
		l.postOp(saveOp{kind: opClear})
		l.logger.Info("new game", "difficulty", m.level)
	case fireMsg:
		m.fn()
		l.maybeAutosave()
	case backgroundMsg:
		l.postSave()
	case closeMsg:
		l.postSave()
		l.sess.Halt()
		close(l.done)
		return true
	}

	if before != Over && l.sess.Status() == Over {
		l.finishGame()
	}
	l.push()
	return false
}

// finishGame runs the terminal side effects: the ledger write and the save
// clear. Terminal sessions are never persisted.
func (l *Loop) finishGame() {
	res := Result{Score: l.sess.Score(), Moves: l.eng.Moves()}
	if l.sess.EventDriven() {
		res.Millis = l.sess.Clock()
	}
	l.logger.Info("session over",
		"outcome", l.sess.Outcome(),
		"difficulty", l.sess.Level(),
		"score", res.Score,
		"clock", l.sess.Clock())
	if l.store == nil {
		return
	}
	l.postOp(saveOp{kind: opResult, level: l.sess.Level(), result: res})
	l.postOp(saveOp{kind: opClear})
	l.absorbBest(l.sess.Level(), res)
}

// absorbBest mirrors the store's strictly-better rule so projections show
// fresh bests without waiting on the writer goroutine.
func (l *Loop) absorbBest(level config.Level, res Result) {
	l.bests[level] = l.bests[level].Absorb(res)
}

func (l *Loop) maybeAutosave() {
	if l.store == nil || l.sess.Status() != Running {
		return
	}
	if time.Since(l.lastSave) < l.autosave {
		return
	}
	l.postSave()
}

// postSave schedules an asynchronous snapshot write. Over sessions clear
// the record instead, and untouched NotStarted boards write nothing.
func (l *Loop) postSave() {
	if l.store == nil {
		return
	}
	switch l.sess.Status() {
	case Over:
		l.postOp(saveOp{kind: opClear})
		return
	case NotStarted:
		return
	}
	blob, err := snapshot.Encode(l.sess.Record())
	if err != nil {
		l.logger.Warn("cannot encode snapshot", "err", err)
		return
	}
	l.lastSave = time.Now()
	l.postOp(saveOp{kind: opSave, runID: l.runID, blob: blob})
}

// postOp hands work to the writer goroutine without ever blocking the
// session; if the writer is saturated the op is dropped and logged.
func (l *Loop) postOp(op saveOp) {
	if l.store == nil {
		return
	}
	select {
	case l.saves <- op:
	default:
		l.logger.Warn("save queue full, dropping write", "kind", op.kind)
	}
}

func (l *Loop) saver() {
	defer l.wg.Done()
	for {
		select {
		case op := <-l.saves:
			l.applyOp(op)
		case <-l.done:
			for {
				select {
				case op := <-l.saves:
					l.applyOp(op)
				default:
					return
				}
			}
		}
	}
}

func (l *Loop) applyOp(op saveOp) {
	var err error
	switch op.kind {
	case opSave:
		err = l.store.SaveSession(l.eng.ID(), op.runID, op.blob)
	case opClear:
		err = l.store.ClearSession(l.eng.ID())
	case opResult:
		err = l.store.RecordResult(l.eng.ID(), op.level, op.result)
	}
	if err != nil {
		l.logger.Warn("persistence failed", "err", err)
	}
}

func (l *Loop) loadBests() {
	bests, err := l.store.Bests(l.eng.ID())
	if err != nil {
		l.logger.Warn("cannot read score ledger", "err", err)
		return
	}
	if bests != nil {
		l.bests = bests
	}
}

// restore applies the read policy: a well-formed record rebuilds the exact
// pre-save state, re-arming the timer if it was running; anything malformed
// is discarded in favor of a fresh deal.
func (l *Loop) restore() {
	blob, ok, err := l.store.LoadSession(l.eng.ID())
	if err != nil {
		l.logger.Warn("cannot load saved session", "err", err)
		return
	}
	if !ok {
		return
	}
	rec, err := snapshot.Decode(blob)
	if err == nil {
		err = l.sess.RestoreRecord(rec)
	}
	if err != nil {
		l.logger.Warn("discarding malformed save", "err", err)
		l.sess.NewGame(l.level)
		l.postOp(saveOp{kind: opClear})
		return
	}
	l.logger.Info("session restored",
		"status", l.sess.Status(),
		"difficulty", l.sess.Level(),
		"score", l.sess.Score())
}

func (l *Loop) push() {
	p := l.sess.Projection()
	p.Best = l.bests[p.Level]
	p.Notice = l.sess.TakeNotice()
	select {
	case l.projs <- p:
	default:
		select {
		case <-l.projs:
		default:
		}
		select {
		case l.projs <- p:
		default:
		}
	}
}
