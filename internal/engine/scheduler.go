package engine

import (
	"sort"
	"time"
)

// Task is a deferred callback handle. Cancel before it fires and it
// never runs.
type Task struct {
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
	done     bool
}

// Cancel prevents the task from firing. Canceling a fired or already
// canceled task is a no-op.
func (t *Task) Cancel() {
	if t != nil {
		t.canceled = true
	}
}

// Pending reports whether the task is still waiting to fire.
func (t *Task) Pending() bool {
	return t != nil && !t.canceled && !t.done
}

// Scheduler runs deferred callbacks against the session clock. It is
// single-threaded: tasks fire inside Advance, never from a goroutine,
// so the session is never mutated concurrently.
type Scheduler struct {
	now   time.Duration
	seq   int
	tasks []*Task
}

// NewScheduler returns a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now is the accumulated session time.
func (s *Scheduler) Now() time.Duration { return s.now }

// After schedules fn to run once delay of session time has passed.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{at: s.now + delay, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward and fires every due task in
// scheduling order. Tasks scheduled by a firing callback are honored
// within the same call when already due.
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt
	for {
		due := s.takeDue()
		if len(due) == 0 {
			return
		}
		for _, t := range due {
			if t.canceled {
				continue
			}
			t.done = true
			t.fn()
		}
	}
}

func (s *Scheduler) takeDue() []*Task {
	var due []*Task
	rest := s.tasks[:0]
	for _, t := range s.tasks {
		switch {
		case t.canceled || t.done:
			// drop
		case t.at <= s.now:
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.tasks = rest
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due
}
