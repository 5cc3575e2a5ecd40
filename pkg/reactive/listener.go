package reactive

// Listener is anything that can be notified when a dependency changes.
// Effects implement it directly; derived values implement it through their
// publishing effect.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// Outside a batch this runs the listener synchronously; inside a batch
	// the call is deferred to the close of the outermost batch.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// Cleanup is a function returned by an effect body. It runs immediately
// before the effect's next re-run and when the effect is disposed.
type Cleanup func()
