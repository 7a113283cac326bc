package match3

import (
	"fmt"
	"sort"
	"time"
)

// Scheduler runs delayed callbacks on a virtual clock. Time only moves
// through Advance, Step and Drain, so a session is reproducible and a
// paused session keeps every remaining delay intact.
type Scheduler struct {
	now    time.Duration
	speed  float64
	seq    uint64
	queue  []*Token
	paused bool
}

// Token is a scheduled callback.
type Token struct {
	s    *Scheduler
	due  time.Duration
	seq  uint64
	fn   func()
	done bool
}

// NewScheduler creates a scheduler. speed divides every delay.
func NewScheduler(speed float64) *Scheduler {
	if speed <= 0 {
		speed = 1
	}
	return &Scheduler{speed: speed}
}

// After schedules fn to run d (divided by the current speed) from now.
// Callbacks with equal due times run in scheduling order.
func (s *Scheduler) After(d time.Duration, fn func()) *Token {
	if d < 0 {
		d = 0
	}
	t := &Token{
		s:   s,
		due: s.now + time.Duration(float64(d)/s.speed),
		seq: s.seq,
		fn:  fn,
	}
	s.seq++
	i := sort.Search(len(s.queue), func(i int) bool {
		q := s.queue[i]
		return q.due > t.due || (q.due == t.due && q.seq > t.seq)
	})
	s.queue = append(s.queue, nil)
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = t
	return t
}

// Cancel removes the token. Returns false if it already ran or was cancelled.
func (t *Token) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}

// Pending reports whether the token is still waiting.
func (t *Token) Pending() bool {
	return !t.done
}

// Remaining returns the virtual time left before the token fires.
func (t *Token) Remaining() time.Duration {
	if t.done || t.due <= t.s.now {
		return 0
	}
	return t.due - t.s.now
}

func (s *Scheduler) remove(t *Token) {
	for i, q := range s.queue {
		if q == t {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// fire pops the earliest token and runs it.
func (s *Scheduler) fire() {
	t := s.queue[0]
	s.queue = s.queue[1:]
	if t.due > s.now {
		s.now = t.due
	}
	t.done = true
	t.fn()
}

// Advance moves the clock forward by dt and runs every callback that
// becomes due, including ones scheduled by those callbacks. Nothing runs
// while paused; if a callback pauses the scheduler the clock stops there.
// Returns the number of callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if s.paused {
		return 0
	}
	target := s.now + dt
	n := 0
	for len(s.queue) > 0 && s.queue[0].due <= target {
		s.fire()
		n++
		if s.paused {
			return n
		}
	}
	s.now = target
	return n
}

// Pause stops the clock.
func (s *Scheduler) Pause() {
	s.paused = true
}

// Resume restarts the clock.
func (s *Scheduler) Resume() {
	s.paused = false
}

// Paused reports whether the clock is stopped.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Step runs exactly one pending callback while paused, jumping the clock to
// its due time. Returns false if not paused or nothing is pending.
func (s *Scheduler) Step() bool {
	if !s.paused || len(s.queue) == 0 {
		return false
	}
	s.fire()
	return true
}

// Drain runs pending callbacks in order, jumping the clock as needed, until
// the queue is empty, the scheduler is paused or limit callbacks have run.
// limit <= 0 means no limit.
func (s *Scheduler) Drain(limit int) int {
	n := 0
	for len(s.queue) > 0 && !s.paused {
		if limit > 0 && n >= limit {
			break
		}
		s.fire()
		n++
	}
	return n
}

// CancelAll drops every pending callback. Returns how many were dropped.
func (s *Scheduler) CancelAll() int {
	n := len(s.queue)
	for _, t := range s.queue {
		t.done = true
	}
	s.queue = nil
	return n
}

// SetSpeed changes the delay divisor. Already scheduled callbacks keep
// their due time.
func (s *Scheduler) SetSpeed(speed float64) error {
	if speed <= 0 {
		return fmt.Errorf("match3: speed must be positive, got %v", speed)
	}
	s.speed = speed
	return nil
}

// Speed returns the delay divisor.
func (s *Scheduler) Speed() float64 {
	return s.speed
}

// Pending returns the number of waiting callbacks.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Now returns the virtual clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}
