package reactive

// Batch groups multiple signal writes into a single notification phase.
// Listeners dirtied inside the batch are collected in the order they first
// became dirty, deduplicated by ID, and run when the outermost batch
// closes. Each affected effect therefore runs at most once and observes
// either all of the batch's writes or none of them.
//
// Batches nest; notifications only fire when the outermost batch completes.
//
// Example:
//
//	Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	})
//	// Dependent effects run once with both changes visible.
func Batch(fn func()) {
	f := currentFrame()
	f.batchDepth++

	defer func() {
		f.batchDepth--
		if f.batchDepth == 0 {
			flushPending(f)
			releaseFrame(f)
		}
	}()

	fn()
}

// flushPending deduplicates and notifies the frame's pending listeners.
// First-dirty order is preserved; later dirtyings of the same listener
// collapse into the first.
func flushPending(f *frame) {
	updates := f.pending
	f.pending = nil
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}

// Untracked runs fn with dependency tracking masked: signal reads inside
// do not subscribe the surrounding effect.
//
// For a single read, Signal.Peek is clearer.
func Untracked(fn func()) {
	pushEffect(nil)
	defer popEffect()
	fn()
}
