package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Loop owns at most one repeating timer. Start replaces the running timer,
// Cancel clears it, and neither ever fails.
type Loop struct {
	clock clockwork.Clock

	opMu sync.Mutex // serializes Start and Cancel
	mu   sync.Mutex
	cur  *run

	fired uint64
}

type run struct {
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewLoop(clock clockwork.Clock) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loop{clock: clock}
}

// Start cancels any running timer and then calls fn every period until fn
// returns false or Cancel is called.
func (l *Loop) Start(period time.Duration, fn func() bool) {
	if period <= 0 || fn == nil {
		return
	}
	l.opMu.Lock()
	defer l.opMu.Unlock()

	l.stopLocked()

	r := &run{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	ticker := l.clock.NewTicker(period)
	l.mu.Lock()
	l.cur = r
	l.mu.Unlock()
	go l.loop(r, ticker, fn)
}

// Cancel stops the running timer, if any. Once it returns no further ticks
// are delivered.
func (l *Loop) Cancel() {
	l.opMu.Lock()
	defer l.opMu.Unlock()
	l.stopLocked()
}

func (l *Loop) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cur != nil
}

// Fired counts callback invocations over the lifetime of the loop.
func (l *Loop) Fired() uint64 {
	return atomic.LoadUint64(&l.fired)
}

func (l *Loop) stopLocked() {
	l.mu.Lock()
	r := l.cur
	l.cur = nil
	l.mu.Unlock()
	if r == nil {
		return
	}
	close(r.stopCh)
	<-r.doneCh
}

func (l *Loop) loop(r *run, ticker clockwork.Ticker, fn func() bool) {
	defer close(r.doneCh)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.Chan():
			select {
			case <-r.stopCh:
				return
			default:
			}
			atomic.AddUint64(&l.fired, 1)
			if !fn() {
				l.finish(r)
				return
			}
		}
	}
}

// finish clears the handle when the callback ends its own run.
func (l *Loop) finish(r *run) {
	l.mu.Lock()
	if l.cur == r {
		l.cur = nil
	}
	l.mu.Unlock()
}
