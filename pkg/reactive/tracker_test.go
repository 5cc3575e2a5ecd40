package reactive

import (
	"testing"

	"github.com/petermattis/goid"
)

// A goroutine that finishes its reactive work must not leave a tracking
// frame behind; the per-goroutine map would otherwise grow by one entry
// for every short-lived goroutine that ever read or wrote a signal.
func TestIdleGoroutineLeavesNoFrame(t *testing.T) {
	gidCh := make(chan int64, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		gidCh <- goid.Get()

		s := NewSignal(1)
		e := CreateEffect(func() Cleanup {
			s.Get()
			return nil
		})
		s.Set(2)
		Batch(func() {
			s.Set(3)
			s.Set(4)
		})

		scope := NewScope(nil)
		scope.Run(func() {
			s.Set(5)
		})
		scope.Dispose()
		e.Dispose()
	}()

	<-done
	gid := <-gidCh
	if _, ok := frames.Load(gid); ok {
		t.Error("idle goroutine still holds a tracking frame")
	}
}

// A write with no subscribers must not allocate a frame at all.
func TestPlainWriteAllocatesNoFrame(t *testing.T) {
	done := make(chan int64, 1)
	go func() {
		s := NewSignal("a")
		s.Set("b")
		done <- goid.Get()
	}()

	gid := <-done
	if _, ok := frames.Load(gid); ok {
		t.Error("subscriber-free write left a tracking frame behind")
	}
}
