package reactive

import (
	"sync"

	"github.com/petermattis/goid"
)

// frame holds the reactive state for one goroutine: the stack of effects
// currently executing, the scope that owns newly created primitives, and
// the batch bookkeeping for deferred notification.
//
// The stack is explicit rather than a single ambient pointer so nested
// effect runs (an effect that synchronously creates and runs another
// effect) restore the outer effect by popping, and so independent reactive
// roots on different goroutines stay isolated.
type frame struct {
	// stack of running effects, innermost last. A nil entry masks
	// tracking for the duration of an Untracked section.
	stack []*Effect

	// scope that owns effects created while it is current.
	scope *Scope

	// batchDepth tracks nested Batch calls. When > 0, notifications
	// queue instead of firing immediately.
	batchDepth int

	// pending accumulates dirty listeners in the order they became
	// dirty. Deduplicated by ID when the outermost batch closes.
	pending []Listener
}

// frames stores per-goroutine frames, keyed by goroutine id.
var frames sync.Map

// currentFrame returns the frame for the calling goroutine, creating one
// on first use.
func currentFrame() *frame {
	gid := goid.Get()
	if f, ok := frames.Load(gid); ok {
		return f.(*frame)
	}
	f := &frame{}
	frames.Store(gid, f)
	return f
}

// peekFrame returns the calling goroutine's frame without creating one.
func peekFrame() *frame {
	if f, ok := frames.Load(goid.Get()); ok {
		return f.(*frame)
	}
	return nil
}

// releaseFrame deletes the goroutine's frame entry once nothing references
// it. Without eviction a short-lived goroutine that ever touched the
// tracking machinery would hold its map entry for the life of the process.
func releaseFrame(f *frame) {
	if len(f.stack) == 0 && f.scope == nil && f.batchDepth == 0 && len(f.pending) == 0 {
		frames.Delete(goid.Get())
	}
}

// activeEffect returns the effect on top of the calling goroutine's
// tracking stack, or nil when no tracking is active.
func activeEffect() *Effect {
	f := peekFrame()
	if f == nil {
		return nil
	}
	if n := len(f.stack); n > 0 {
		return f.stack[n-1]
	}
	return nil
}

// pushEffect makes e the actively tracked effect. A nil e masks tracking.
func pushEffect(e *Effect) {
	f := currentFrame()
	f.stack = append(f.stack, e)
}

// popEffect restores the previously tracked effect.
func popEffect() {
	f := currentFrame()
	f.stack = f.stack[:len(f.stack)-1]
	releaseFrame(f)
}

// currentScope returns the scope owning newly created effects, or nil.
func currentScope() *Scope {
	f := peekFrame()
	if f == nil {
		return nil
	}
	return f.scope
}

// setCurrentScope swaps the current scope and returns the previous one.
func setCurrentScope(s *Scope) *Scope {
	f := currentFrame()
	old := f.scope
	f.scope = s
	releaseFrame(f)
	return old
}

// queueDirty records a listener made dirty inside a batch. Order of first
// dirtying is preserved.
func (f *frame) queueDirty(l Listener) {
	f.pending = append(f.pending, l)
}
