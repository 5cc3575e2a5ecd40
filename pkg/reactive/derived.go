package reactive

// Derived is a computed value published into a signal the computation
// exclusively owns. The compute function runs inside an effect, so any
// signal it reads becomes a dependency and the published value is
// recomputed as soon as a dependency settles. Readers never observe a
// stale value between a dependency write and the next read.
//
// Downstream listeners only re-run when the computed value actually
// changes under the owned signal's equality function.
type Derived[T any] struct {
	out    *Signal[T]
	effect *Effect
}

// NewDerived creates a derived value from a compute function and runs the
// first computation immediately.
func NewDerived[T any](compute func() T) *Derived[T] {
	var zero T
	d := &Derived[T]{
		out: NewSignal(zero),
	}

	first := true
	d.effect = CreateEffect(func() Cleanup {
		value := compute()
		if first {
			// The initial computation seeds the owned signal directly:
			// there is nobody subscribed yet, and the zero value must
			// not be observable as a "previous" state.
			first = false
			d.out.value = value
			return nil
		}
		d.out.Set(value)
		return nil
	})

	return d
}

// Get returns the derived value and subscribes the running effect, if any.
func (d *Derived[T]) Get() T {
	return d.out.Get()
}

// Peek returns the derived value without subscribing.
func (d *Derived[T]) Peek() T {
	return d.out.Peek()
}

// WithEquals configures the equality function used to decide whether a
// recomputation changed the value.
func (d *Derived[T]) WithEquals(fn func(T, T) bool) *Derived[T] {
	d.out.WithEquals(fn)
	return d
}

// ID returns the unique identifier of the owned signal.
func (d *Derived[T]) ID() uint64 {
	return d.out.ID()
}

// Dispose stops the computation and marks the owned signal inert.
func (d *Derived[T]) Dispose() {
	d.effect.Dispose()
	d.out.Dispose()
}
