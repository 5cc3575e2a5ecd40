package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive computation that re-runs whenever any signal it
// read during its last run changes.
//
// Dependency sets are recomputed per run, not accumulated: before each run
// the effect detaches from every signal it was subscribed to, and whatever
// it reads during the run becomes the new set. The body may return a
// Cleanup, invoked immediately before the next re-run and on disposal.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals this effect is currently subscribed to.
	sources   []*signalCore
	sourcesMu sync.Mutex

	// scope is the Scope that owns this effect, if any.
	scope *Scope

	// running and rerun are only touched from the goroutine driving the
	// effect. A write observed mid-run sets rerun instead of recursing.
	running bool
	rerun   bool

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// CreateEffect creates a new effect owned by the current scope and runs it
// immediately. The body re-runs whenever any signal it read changes.
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}

	if s := currentScope(); s != nil {
		e.scope = s
		s.registerEffect(e)
	}

	e.run()

	return e
}

// MarkDirty schedules the effect to re-run.
// Outside a batch the effect runs synchronously before MarkDirty returns.
// A dirtying observed during the effect's own run is coalesced into a
// single follow-up run. Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	if e.running {
		e.rerun = true
		return
	}

	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect body, looping while the body dirtied itself.
func (e *Effect) run() {
	for {
		e.runOnce()
		if e.disposed.Load() || !e.rerun {
			return
		}
		e.rerun = false
	}
}

// runOnce performs a single tracked execution of the body.
func (e *Effect) runOnce() {
	if e.disposed.Load() {
		return
	}

	// Run cleanup from the previous run.
	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		cleanup()
	}

	// Detach from the previous run's sources. The old set is kept aside:
	// if this run fails it is restored, so a half-completed run never
	// corrupts tracking state.
	prev := e.detachSources()

	e.running = true
	pushEffect(e)

	failed := e.invoke()

	popEffect()
	e.running = false

	if failed {
		e.restoreSources(prev)
	}

	if e.disposed.Load() {
		// The effect disposed itself mid-run. Its latest cleanup still
		// runs exactly once, and no further re-run is scheduled.
		if e.cleanup != nil {
			cleanup := e.cleanup
			e.cleanup = nil
			cleanup()
		}
		e.detachSources()
		e.rerun = false
	}
}

// invoke runs the body, recovering a panic so one failing effect does not
// abort the rest of the propagation pass. Reports whether the body failed.
func (e *Effect) invoke() (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			failed = true
			logger.Error().
				Uint64("effect", e.id).
				Interface("panic", r).
				Msg("effect body panicked")
		}
	}()

	e.cleanup = e.fn()
	return false
}

// Dispose stops the effect: its latest cleanup runs exactly once and it
// detaches from every source. Disposing mid-run defers the teardown to the
// end of the current run. Idempotent.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.running {
		// The run loop finishes the teardown when the body returns.
		return
	}

	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		cleanup()
	}

	e.detachSources()
}

// IsDisposed reports whether the effect has been disposed.
func (e *Effect) IsDisposed() bool {
	return e.disposed.Load()
}

// addSource records a source dependency.
// Called by signals when they are read during this effect's run.
func (e *Effect) addSource(source *signalCore) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// detachSources unsubscribes from every current source and returns the set
// that was detached.
func (e *Effect) detachSources() []*signalCore {
	e.sourcesMu.Lock()
	sources := e.sources
	e.sources = nil
	e.sourcesMu.Unlock()

	for _, source := range sources {
		source.unsubscribe(e)
	}
	return sources
}

// restoreSources re-subscribes the dependency set of the last successful
// run after a failed one, discarding whatever the failed run recorded.
func (e *Effect) restoreSources(prev []*signalCore) {
	e.detachSources()

	for _, source := range prev {
		source.subscribe(e)
	}

	e.sourcesMu.Lock()
	e.sources = prev
	e.sourcesMu.Unlock()
}
