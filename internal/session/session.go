package session

import (
	"math/rand"
	"time"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/snapshot"
)

// pulseInterval is the cadence of the display stopwatch armed for
// event-driven games while they run. It drives clock refresh and autosave,
// never simulation.
const pulseInterval = time.Second

// Engine is one mini-game's simulation, specialized three ways over the
// same session contract: tick-driven with coarse grid motion (snake),
// tick-driven with sub-cell float motion (breakout), and event-driven
// (memory, puzzle, quiz). Engines never touch timers or storage; they
// mutate their payload and report terminal conditions through Ctx.
type Engine interface {
	// ID returns the stable identifier used as the persistence key.
	ID() string
	// Title returns the display name.
	Title() string
	// TickInterval returns the fixed simulation cadence for a difficulty,
	// or 0 for event-driven engines that only move on input.
	TickInterval(level config.Level) time.Duration
	// Reset regenerates the payload for a new game at the given difficulty.
	Reset(level config.Level, rng *rand.Rand)
	// Advance runs one simulation step. Never called on event-driven engines.
	Advance(ctx *Ctx)
	// Apply consumes one player input, already screened by session status.
	// Returning true marks the input qualifying: a qualifying input while
	// NotStarted implicitly starts the session.
	Apply(ctx *Ctx, in Input) bool
	// Moves returns the move counter for engines that track one, else 0.
	Moves() int
	// Snapshot writes the full payload into rec.
	Snapshot(rec snapshot.Record)
	// Restore rebuilds the payload from rec, validating as it goes. On
	// error the caller discards the whole record and deals a fresh game.
	Restore(rec snapshot.Record) error
	// View returns the game-specific read-only projection payload.
	View() any
}

// Session is the authoritative state of one in-progress game: the generic
// fields of the state machine plus the engine holding the payload. A
// session has a single logical owner; all methods must be called from that
// owner's goroutine. The loop provides that confinement for live play.
type Session struct {
	eng   Engine
	sched Scheduler
	rng   *rand.Rand
	now   func() time.Time

	level      config.Level
	status     Status
	outcome    Outcome
	score      int
	ticks      int64
	accumMS    int64
	startedAt  time.Time
	generation uint64
	timer      TimerHandle
	notice     string
}

// Options configures a new session.
type Options struct {
	// Scheduler arms the session's timers. Required.
	Scheduler Scheduler
	// Level is the starting difficulty.
	Level config.Level
	// Rand seeds payload generation. Nil means a clock-seeded RNG.
	Rand *rand.Rand
	// Now is the time source for the event-driven stopwatch. Nil means
	// time.Now; tests substitute a fake.
	Now func() time.Time
}

// New creates a session and deals the first game at opts.Level.
func New(eng Engine, opts Options) *Session {
	if opts.Scheduler == nil {
		panic("session: nil scheduler")
	}
	if opts.Rand == nil {
		opts.Rand = core.NewRand(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{
		eng:   eng,
		sched: opts.Scheduler,
		rng:   opts.Rand,
		now:   opts.Now,
	}
	s.NewGame(opts.Level)
	return s
}

// Engine returns the underlying game engine.
func (s *Session) Engine() Engine { return s.eng }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Outcome returns why the session ended; OutcomeNone unless Over.
func (s *Session) Outcome() Outcome { return s.outcome }

// Level returns the session difficulty.
func (s *Session) Level() config.Level { return s.level }

// Score returns the current score. Never negative.
func (s *Session) Score() int { return s.score }

// Generation returns the new-game counter used to invalidate stale
// deferred callbacks.
func (s *Session) Generation() uint64 { return s.generation }

// EventDriven reports whether the engine moves on input instead of ticks.
func (s *Session) EventDriven() bool {
	return s.eng.TickInterval(s.level) <= 0
}

// Clock returns the session clock: the tick count for tick-driven engines,
// elapsed play milliseconds for event-driven ones. Time spent paused never
// counts.
func (s *Session) Clock() int64 {
	if !s.EventDriven() {
		return s.ticks
	}
	ms := s.accumMS
	if s.status == Running && !s.startedAt.IsZero() {
		ms += s.now().Sub(s.startedAt).Milliseconds()
	}
	return ms
}

// NewGame discards the current session and deals a fresh payload at the
// given difficulty. Always succeeds from any state; any armed timer is
// cancelled and outstanding deferred callbacks are invalidated.
func (s *Session) NewGame(level config.Level) {
	s.cancelTimer()
	s.generation++
	s.level = level
	s.status = NotStarted
	s.outcome = OutcomeNone
	s.score = 0
	s.ticks = 0
	s.accumMS = 0
	s.startedAt = time.Time{}
	s.notice = ""
	s.eng.Reset(level, s.rng)
}

// Start moves NotStarted → Running and arms the timer: the simulation
// ticker for tick-driven engines, the display stopwatch pulse for
// event-driven ones. A no-op from any other state.
func (s *Session) Start() {
	if s.status != NotStarted {
		return
	}
	s.status = Running
	s.arm()
}

// Pause moves Running → Paused. The timer is cancelled before Pause
// returns, so no new fire can be scheduled afterwards; a fire already in
// flight is discarded by Tick's status check. A no-op from any other state.
func (s *Session) Pause() {
	if s.status != Running {
		return
	}
	s.cancelTimer()
	s.foldStopwatch()
	s.status = Paused
}

// Resume moves Paused → Running, re-arming the timer at the same cadence.
// The clock is not reset. A no-op from any other state.
func (s *Session) Resume() {
	if s.status != Paused {
		return
	}
	s.status = Running
	s.arm()
}

// SubmitInput hands a player input to the engine. Silently ignored unless
// the session is NotStarted or Running; a qualifying input while NotStarted
// also starts the session.
func (s *Session) SubmitInput(in Input) {
	if s.status != NotStarted && s.status != Running {
		return
	}
	fromNotStarted := s.status == NotStarted
	qualifying := s.eng.Apply(&Ctx{s: s}, in)
	if qualifying && fromNotStarted && s.status == NotStarted {
		s.Start()
	}
}

// Tick runs one scheduler fire. The leading status check is the stale-tick
// guard: a fire that was already in flight when Pause landed is discarded
// here. For event-driven engines the fire is only the stopwatch pulse and
// the simulation is left alone.
func (s *Session) Tick() {
	if s.status != Running {
		return
	}
	if s.EventDriven() {
		return
	}
	s.ticks++
	s.eng.Advance(&Ctx{s: s})
}

// Halt releases the timer without a state transition. Only the shutdown
// path uses it, to stop ticking while keeping the state worth persisting;
// the session must not be driven afterwards.
func (s *Session) Halt() {
	s.cancelTimer()
}

// TakeNotice returns and clears the transient notice set by the engine,
// such as a level-cleared banner. Notices are presentation side effects,
// not state.
func (s *Session) TakeNotice() string {
	n := s.notice
	s.notice = ""
	return n
}

func (s *Session) arm() {
	interval := s.eng.TickInterval(s.level)
	if interval <= 0 {
		s.startedAt = s.now()
		interval = pulseInterval
	}
	s.timer = s.sched.Repeat(interval, s.Tick)
}

func (s *Session) cancelTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// foldStopwatch banks elapsed run time into accumMS so that paused wall
// time cannot leak into the clock.
func (s *Session) foldStopwatch() {
	if s.EventDriven() && !s.startedAt.IsZero() {
		s.accumMS += s.now().Sub(s.startedAt).Milliseconds()
		s.startedAt = time.Time{}
	}
}

// end is the single terminal transition, reached only through Ctx.End
// inside an engine's Advance or Apply.
func (s *Session) end(outcome Outcome) {
	if s.status == Over {
		return
	}
	s.cancelTimer()
	s.foldStopwatch()
	s.status = Over
	s.outcome = outcome
}

// Ctx is the narrow surface an engine sees of its session during Advance
// and Apply.
type Ctx struct {
	s *Session
}

// Level returns the session difficulty.
func (c *Ctx) Level() config.Level { return c.s.level }

// Score returns the current score.
func (c *Ctx) Score() int { return c.s.score }

// AddScore awards points. The score only ever grows.
func (c *Ctx) AddScore(n int) {
	if n > 0 {
		c.s.score += n
	}
}

// Clock returns the session clock (ticks or milliseconds).
func (c *Ctx) Clock() int64 { return c.s.Clock() }

// End transitions the session to Over with the given outcome, cancelling
// the timer as part of the same step.
func (c *Ctx) End(outcome Outcome) {
	c.s.end(outcome)
}

// Notify publishes a transient presentation notice.
func (c *Ctx) Notify(msg string) {
	c.s.notice = msg
}

// Defer schedules a one-shot callback guarded by the session generation: if
// NewGame runs before the delay elapses, the callback is a no-op instead of
// corrupting the newer session.
func (c *Ctx) Defer(d time.Duration, fn func()) {
	s := c.s
	gen := s.generation
	s.sched.Once(d, func() {
		if s.generation != gen {
			return
		}
		fn()
	})
}
