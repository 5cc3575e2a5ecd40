package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		return nil
	})
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestEffectRerunsOnDependencyWrite(t *testing.T) {
	s := NewSignal(1)

	var seen []int
	CreateEffect(func() Cleanup {
		seen = append(seen, s.Get())
		return nil
	})

	s.Set(2)
	s.Set(3)

	want := []int{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen = %v, want %v", seen, want)
			break
		}
	}
}

func TestEffectDependenciesRecomputedPerRun(t *testing.T) {
	useA := NewSignal(true)
	a := NewSignal("a")
	b := NewSignal("b")

	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		if useA.Get() {
			a.Get()
		} else {
			b.Get()
		}
		return nil
	})

	// While reading a, writes to b are invisible.
	b.Set("b2")
	if runs != 1 {
		t.Fatalf("runs = %d, want 1: effect must not depend on unread signal", runs)
	}

	useA.Set(false)
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}

	// Dependencies switched: writes to a are now invisible, writes to b
	// are seen again.
	a.Set("a2")
	if runs != 2 {
		t.Errorf("runs = %d, want 2: stale dependency on a survived", runs)
	}
	b.Set("b3")
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestEffectCleanupRunsBeforeRerunAndOnDispose(t *testing.T) {
	s := NewSignal(0)

	var log []string
	e := CreateEffect(func() Cleanup {
		v := s.Get()
		log = append(log, "run")
		_ = v
		return func() {
			log = append(log, "cleanup")
		}
	})

	s.Set(1)
	e.Dispose()

	want := []string{"run", "cleanup", "run", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestEffectDisposeStopsReruns(t *testing.T) {
	s := NewSignal(0)

	runs := 0
	e := CreateEffect(func() Cleanup {
		s.Get()
		runs++
		return nil
	})

	e.Dispose()
	if !e.IsDisposed() {
		t.Fatal("IsDisposed() = false after Dispose")
	}

	s.Set(1)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}

	// Dispose is idempotent.
	e.Dispose()
}

func TestEffectSelfDisposeRunsCleanupOnce(t *testing.T) {
	s := NewSignal(1)

	cleanups := 0
	runs := 0
	var e *Effect
	e = CreateEffect(func() Cleanup {
		runs++
		if s.Get() == 2 {
			e.Dispose()
		}
		return func() { cleanups++ }
	})

	s.Set(2)

	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}
	// Cleanup from the first run fired before the second, and the second
	// run's cleanup fired exactly once at self-disposal.
	if cleanups != 2 {
		t.Errorf("cleanups = %d, want 2", cleanups)
	}

	s.Set(3)
	if runs != 2 {
		t.Errorf("runs after self-dispose = %d, want 2", runs)
	}
}

func TestEffectWriteDuringRunCoalesces(t *testing.T) {
	s := NewSignal(20)

	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		if s.Get() > 10 {
			s.Set(10) // clamp
		}
		return nil
	})

	if got := s.Peek(); got != 10 {
		t.Errorf("Peek() = %d, want 10", got)
	}
	// The self-write coalesces into exactly one follow-up run.
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestEffectPanicKeepsPreviousDependencies(t *testing.T) {
	trigger := NewSignal(false)
	val := NewSignal(1)

	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		if trigger.Get() {
			panic("boom")
		}
		val.Get()
		return nil
	})

	if runs != 1 {
		t.Fatalf("runs = %d, want 1", runs)
	}

	// This run panics after reading only trigger. The dependency set of
	// the last successful run must survive the failure.
	trigger.Set(true)
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}

	val.Set(2)
	if runs != 3 {
		t.Errorf("runs = %d, want 3: dependency on val lost after failed run", runs)
	}

	// Recovery: a successful run re-establishes tracking normally.
	trigger.Set(false)
	val.Set(3)
	if runs != 5 {
		t.Errorf("runs = %d, want 5", runs)
	}
}

func TestNestedEffectsTrackIndependently(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(1)

	outerRuns := 0
	innerRuns := 0
	CreateEffect(func() Cleanup {
		outerRuns++
		a.Get()
		CreateEffect(func() Cleanup {
			innerRuns++
			b.Get()
			return nil
		})
		return nil
	})

	if outerRuns != 1 || innerRuns != 1 {
		t.Fatalf("outerRuns = %d, innerRuns = %d, want 1, 1", outerRuns, innerRuns)
	}

	// The inner read of b must not leak into the outer dependency set.
	b.Set(2)
	if outerRuns != 1 {
		t.Errorf("outerRuns = %d, want 1: inner dependency leaked to outer", outerRuns)
	}
	if innerRuns != 2 {
		t.Errorf("innerRuns = %d, want 2", innerRuns)
	}
}

func TestUntracked(t *testing.T) {
	tracked := NewSignal(1)
	untracked := NewSignal(1)

	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		tracked.Get()
		Untracked(func() {
			untracked.Get()
		})
		return nil
	})

	untracked.Set(2)
	if runs != 1 {
		t.Errorf("runs = %d, want 1: untracked read registered a dependency", runs)
	}

	tracked.Set(2)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}
