package battle

import (
	"sync"
	"time"
)

// PhaseTimer fires a callback once a phase's presentation delay has elapsed
// unless stopped. It is safe for concurrent use.
type PhaseTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewPhaseTimer starts a timer that calls onFire after delay, in a separate
// goroutine. A non-positive delay fires immediately.
//
// Precondition: onFire must not be nil.
// Postcondition: onFire will be called unless Stop is called first.
func NewPhaseTimer(delay time.Duration, onFire func()) *PhaseTimer {
	pt := &PhaseTimer{}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.timer = time.AfterFunc(max(delay, 0), pt.guard(onFire))
	return pt
}

// Reset cancels the pending callback and schedules onFire after delay.
//
// Precondition: onFire must not be nil.
func (pt *PhaseTimer) Reset(delay time.Duration, onFire func()) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.timer.Stop()
	pt.stopped = false
	pt.timer = time.AfterFunc(max(delay, 0), pt.guard(onFire))
}

// Stop prevents the callback from firing. Safe to call multiple times.
//
// Postcondition: onFire will not be called after Stop returns.
func (pt *PhaseTimer) Stop() {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.stopped = true
	pt.timer.Stop()
}

func (pt *PhaseTimer) guard(onFire func()) func() {
	return func() {
		pt.mu.Lock()
		stopped := pt.stopped
		pt.mu.Unlock()
		if !stopped {
			onFire()
		}
	}
}
