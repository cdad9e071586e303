package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests. Time only moves when Advance
// is called, and due callbacks run synchronously inside Advance, so tests
// control exactly when a debounce deadline fires.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	seq    int
}

// NewFake creates a fake clock at a fixed, arbitrary start time
func NewFake() *Fake {
	return &Fake{
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Now returns the fake current time
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc registers a callback to run when the fake time passes d
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{
		clock:    f,
		fn:       fn,
		deadline: f.now.Add(d),
		seq:      f.seq,
		pending:  true,
	}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves the fake time forward by d, firing due callbacks in deadline
// order. Callbacks run without the clock lock held, so they may schedule or
// stop timers themselves.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		t := f.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	f.mu.Lock()
	if target.After(f.now) {
		f.now = target
	}
	f.mu.Unlock()
}

// popDue removes and returns the earliest pending timer due at or before
// target, moving the fake time to its deadline. Returns nil when none remain.
func (f *Fake) popDue(target time.Time) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].deadline.Equal(f.timers[j].deadline) {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].deadline.Before(f.timers[j].deadline)
	})

	for i, t := range f.timers {
		if !t.pending || t.deadline.After(target) {
			continue
		}
		t.pending = false
		f.timers = append(f.timers[:i], f.timers[i+1:]...)
		if t.deadline.After(f.now) {
			f.now = t.deadline
		}
		return t
	}
	return nil
}

// remove drops a timer from the pending list. Caller holds the lock.
func (f *Fake) remove(t *fakeTimer) {
	for i, existing := range f.timers {
		if existing == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}

type fakeTimer struct {
	clock    *Fake
	fn       func()
	deadline time.Time
	seq      int
	pending  bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	was := t.pending
	t.pending = false
	t.clock.remove(t)
	return was
}

func (t *fakeTimer) Reset(d time.Duration) bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	was := t.pending
	t.deadline = t.clock.now.Add(d)
	if !t.pending {
		t.pending = true
		t.clock.timers = append(t.clock.timers, t)
	}
	return was
}
