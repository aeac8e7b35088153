// Package clock provides tick-driven timers for game sessions.
//
// Nothing here reads the wall clock: time moves only when the owner calls
// Advance, normally once per simulation tick. A timer therefore can never
// fire after the session that scheduled it has been reset or torn down.
package clock

import (
	"slices"
	"time"
)

// Handle identifies a scheduled callback.
type Handle struct {
	id         uint64
	generation uint64
}

type entry struct {
	handle Handle
	due    time.Duration
	fn     func()
}

// Scheduler runs callbacks after a logical delay.
// Every entry is tagged with the generation it was scheduled in;
// Invalidate advances the generation and drops everything queued.
type Scheduler struct {
	now        time.Duration
	generation uint64
	nextID     uint64
	queue      []entry
}

// NewScheduler creates an empty scheduler at logical time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's logical time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Generation returns the current generation counter.
func (s *Scheduler) Generation() uint64 {
	return s.generation
}

// After schedules fn to run once d of logical time has elapsed.
// A non-positive delay runs on the next Advance call.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	s.nextID++
	h := Handle{id: s.nextID, generation: s.generation}
	s.queue = append(s.queue, entry{handle: h, due: s.now + max(d, 0), fn: fn})
	return h
}

// Cancel removes a scheduled callback. Returns false if it already ran,
// was cancelled, or belongs to an older generation.
func (s *Scheduler) Cancel(h Handle) bool {
	for i, e := range s.queue {
		if e.handle == h {
			s.queue = slices.Delete(s.queue, i, i+1)
			return true
		}
	}
	return false
}

// Invalidate drops every pending callback and starts a new generation.
func (s *Scheduler) Invalidate() {
	s.generation++
	s.queue = s.queue[:0]
}

// Pending returns the number of callbacks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Advance moves logical time forward by dt and runs every callback whose
// deadline has been reached, earliest first (ties in scheduling order).
// Callbacks may schedule, cancel or invalidate; newly scheduled entries
// that are already due run in the same call. Returns the number of
// callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}

	ran := 0
	for {
		idx := s.nextDue()
		if idx < 0 {
			return ran
		}
		e := s.queue[idx]
		s.queue = slices.Delete(s.queue, idx, idx+1)
		if e.handle.generation != s.generation {
			continue
		}
		e.fn()
		ran++
	}
}

// nextDue returns the index of the earliest due entry, or -1.
func (s *Scheduler) nextDue() int {
	best := -1
	for i, e := range s.queue {
		if e.due > s.now {
			continue
		}
		if best < 0 || e.due < s.queue[best].due ||
			(e.due == s.queue[best].due && e.handle.id < s.queue[best].handle.id) {
			best = i
		}
	}
	return best
}
