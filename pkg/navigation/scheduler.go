package navigation

import (
	"sort"
	"sync"
	"time"
)

// Scheduler is the host scheduling primitive consumed by the coordinator:
// "run this callback after duration d". It abstracts the UI framework's
// deferred-execution facility so the engine can be driven by real timers in
// production and by a virtual clock in tests and scenario replay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler runs callbacks on real timers via time.AfterFunc.
type TimerScheduler struct{}

// NewTimerScheduler creates a timer-backed scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// AfterFunc schedules fn after d on a timer goroutine.
func (*TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// ManualScheduler is a deterministic scheduler driven by an explicit virtual
// clock. Nothing runs until [ManualScheduler.Advance] or
// [ManualScheduler.RunNext] is called, which makes transition timing fully
// controllable in tests and replays.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []manualTask
}

type manualTask struct {
	due time.Duration
	seq int // arrival order breaks ties between equal due times
	fn  func()
}

// NewManualScheduler creates a manual scheduler with the clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers fn to run once the clock has advanced by d.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, manualTask{due: s.now + d, seq: s.seq, fn: fn})
	s.seq++
}

// Advance moves the clock forward by d, running every task that comes due in
// order. Tasks scheduled by running tasks are themselves run if they come due
// within the same advance.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		task, ok := s.popDue(target)
		if !ok {
			break
		}
		task.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// RunNext runs the single earliest pending task, advancing the clock to its
// due time. It reports whether a task was run.
func (s *ManualScheduler) RunNext() bool {
	task, ok := s.popDue(1 << 62) // no time bound: take the earliest task
	if !ok {
		return false
	}
	task.fn()
	return true
}

// Now returns the current virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of tasks waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// popDue removes and returns the earliest task due at or before target,
// advancing the clock to its due time. Callers invoke the task without
// holding the lock so tasks can schedule follow-up work.
func (s *ManualScheduler) popDue(target time.Duration) (manualTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return manualTask{}, false
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if s.tasks[0].due > target {
		return manualTask{}, false
	}

	task := s.tasks[0]
	s.tasks = s.tasks[1:]
	if task.due > s.now {
		s.now = task.due
	}
	return task, true
}
