package navigation

import (
	"testing"
	"time"
)

func TestManualSchedulerAdvanceRunsDueTasks(t *testing.T) {
	sched := NewManualScheduler()

	var ran []string
	sched.AfterFunc(100*time.Millisecond, func() { ran = append(ran, "a") })
	sched.AfterFunc(200*time.Millisecond, func() { ran = append(ran, "b") })

	sched.Advance(50 * time.Millisecond)
	if len(ran) != 0 {
		t.Fatalf("ran = %v, want none before due time", ran)
	}

	sched.Advance(100 * time.Millisecond)
	if len(ran) != 1 || ran[0] != "a" {
		t.Fatalf("ran = %v, want [a]", ran)
	}

	sched.Advance(100 * time.Millisecond)
	if len(ran) != 2 || ran[1] != "b" {
		t.Fatalf("ran = %v, want [a b]", ran)
	}
}

func TestManualSchedulerArrivalOrderBreaksTies(t *testing.T) {
	sched := NewManualScheduler()

	var ran []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		sched.AfterFunc(100*time.Millisecond, func() { ran = append(ran, name) })
	}

	sched.Advance(100 * time.Millisecond)
	if len(ran) != 3 || ran[0] != "a" || ran[1] != "b" || ran[2] != "c" {
		t.Fatalf("ran = %v, want [a b c]", ran)
	}
}

func TestManualSchedulerTasksCanScheduleTasks(t *testing.T) {
	sched := NewManualScheduler()

	var ran []string
	sched.AfterFunc(100*time.Millisecond, func() {
		ran = append(ran, "outer")
		sched.AfterFunc(100*time.Millisecond, func() { ran = append(ran, "inner") })
	})

	// The inner task comes due within the same advance and runs too.
	sched.Advance(200 * time.Millisecond)
	if len(ran) != 2 || ran[0] != "outer" || ran[1] != "inner" {
		t.Fatalf("ran = %v, want [outer inner]", ran)
	}
}

func TestManualSchedulerRunNext(t *testing.T) {
	sched := NewManualScheduler()

	var ran int
	sched.AfterFunc(1*time.Second, func() { ran++ })
	sched.AfterFunc(2*time.Second, func() { ran++ })

	if !sched.RunNext() {
		t.Fatal("RunNext() = false, want true")
	}
	if ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
	if got := sched.Now(); got != 1*time.Second {
		t.Errorf("Now() = %v, want 1s (clock jumps to the task's due time)", got)
	}

	if !sched.RunNext() {
		t.Fatal("RunNext() = false for second task, want true")
	}
	if sched.RunNext() {
		t.Error("RunNext() = true on empty scheduler, want false")
	}
}

func TestManualSchedulerZeroDelay(t *testing.T) {
	sched := NewManualScheduler()

	ran := false
	sched.AfterFunc(0, func() { ran = true })

	if sched.Pending() != 1 {
		t.Fatal("zero-delay tasks wait for the next tick, not the call site")
	}
	sched.Advance(0)
	if !ran {
		t.Error("Advance(0) should run tasks already due")
	}
}

func TestManualSchedulerNegativeDelayClamped(t *testing.T) {
	sched := NewManualScheduler()
	sched.Advance(time.Second)

	ran := false
	sched.AfterFunc(-time.Hour, func() { ran = true })
	sched.Advance(0)

	if !ran {
		t.Error("negative delays should clamp to the current time")
	}
}
