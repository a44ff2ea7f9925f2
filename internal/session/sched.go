package session

import "time"

// TimerHandle cancels an armed timer. Stop is idempotent and safe after the
// timer has fired.
type TimerHandle interface {
	Stop()
}

// Scheduler arms timers on behalf of a session. The loop's scheduler
// delivers fires onto the owning goroutine; the manual scheduler fires
// synchronously for tests. In both cases fire callbacks run on the session
// owner's execution context, never concurrently with other session access.
type Scheduler interface {
	// Repeat arms a repeating timer with the given cadence.
	Repeat(interval time.Duration, fire func()) TimerHandle
	// Once arms a one-shot timer.
	Once(delay time.Duration, fire func()) TimerHandle
}

// ManualScheduler is a deterministic Scheduler for tests: nothing fires
// until the test says so.
type ManualScheduler struct {
	repeat  *manualTimer
	oneshot []*manualOneShot
}

type manualTimer struct {
	stopped bool
	fire    func()
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

type manualOneShot struct {
	stopped   bool
	remaining time.Duration
	fire      func()
}

func (t *manualOneShot) Stop() {
	t.stopped = true
}

// NewManualScheduler returns an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Repeat arms the repeating timer. Only one repeating timer can be live at a
// time, mirroring the one-timer-per-session rule.
func (m *ManualScheduler) Repeat(interval time.Duration, fire func()) TimerHandle {
	t := &manualTimer{fire: fire}
	m.repeat = t
	return t
}

// Once arms a one-shot that fires after Elapse has advanced past its delay.
func (m *ManualScheduler) Once(delay time.Duration, fire func()) TimerHandle {
	t := &manualOneShot{remaining: delay, fire: fire}
	m.oneshot = append(m.oneshot, t)
	return t
}

// Armed reports whether a live repeating timer exists.
func (m *ManualScheduler) Armed() bool {
	return m.repeat != nil && !m.repeat.stopped
}

// Tick fires the repeating timer once, if armed.
func (m *ManualScheduler) Tick() {
	if m.Armed() {
		m.repeat.fire()
	}
}

// TickN fires the repeating timer n times.
func (m *ManualScheduler) TickN(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Elapse advances virtual time for one-shots, firing any that come due.
func (m *ManualScheduler) Elapse(d time.Duration) {
	due := make([]*manualOneShot, 0, len(m.oneshot))
	rest := m.oneshot[:0]
	for _, t := range m.oneshot {
		if t.stopped {
			continue
		}
		t.remaining -= d
		if t.remaining <= 0 {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.oneshot = rest
	for _, t := range due {
		t.fire()
	}
}
