package reactive

import (
	"reflect"
	"sync"
)

// signalCore provides type-erased subscriber management.
// It is embedded in Signal[T] and owned by Derived[T] to share
// subscription logic.
type signalCore struct {
	id uint64

	// subs are the listeners subscribed to this signal, in subscription
	// order. Notification order is subscription order, so removal shifts
	// instead of swapping with the last element.
	subs []Listener

	// subMu protects subs and disposed.
	subMu sync.Mutex

	// disposed marks the cell inert: writes no-op, reads return the last
	// value, and no subscriber is ever added again.
	disposed bool
}

// subscribe adds a listener, deduplicating by listener ID.
func (c *signalCore) subscribe(l Listener) {
	if l == nil {
		return
	}

	c.subMu.Lock()
	defer c.subMu.Unlock()

	if c.disposed {
		return
	}

	lid := l.ID()
	for _, existing := range c.subs {
		if existing.ID() == lid {
			return
		}
	}

	c.subs = append(c.subs, l)
}

// unsubscribe removes a listener, preserving the order of the rest.
func (c *signalCore) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	c.subMu.Lock()
	defer c.subMu.Unlock()

	lid := l.ID()
	for i, existing := range c.subs {
		if existing.ID() == lid {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// notify delivers change notifications to a snapshot of the subscribers,
// in subscription order. Subscriber mutation during delivery (an effect
// re-subscribing, or unsubscribing as it re-runs) cannot corrupt the
// iteration because delivery walks the snapshot, not the live slice.
// Inside a batch, listeners queue for the close of the outermost batch.
func (c *signalCore) notify() {
	c.subMu.Lock()
	subs := make([]Listener, len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()

	if f := peekFrame(); f != nil && f.batchDepth > 0 {
		for _, sub := range subs {
			f.queueDirty(sub)
		}
		return
	}

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// dispose clears the subscriber set and marks the cell inert.
func (c *signalCore) dispose() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.disposed = true
	c.subs = nil
}

// isDisposed reports whether the cell is inert.
func (c *signalCore) isDisposed() bool {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	return c.disposed
}

// Signal is a reactive value container.
// Reading a Signal's value while an effect is executing automatically
// subscribes that effect to the signal's changes.
type Signal[T any] struct {
	core signalCore

	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal is the equality function used to decide whether a write
	// changed the value. If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		core: signalCore{
			id: nextID(),
		},
		value: initial,
	}
}

// Get returns the current value and subscribes the running effect, if any.
// Dependency registration is a side effect of reading; there is no
// separate subscription call.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	if e := activeEffect(); e != nil {
		s.core.subscribe(e)
		e.addSource(&s.core)
	}

	return value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the signal's value and synchronously notifies subscribers in
// subscription order. Writes of a value equal to the current one (under
// the signal's equality function) are complete no-ops. Writes to a
// disposed signal are no-ops.
func (s *Signal[T]) Set(value T) {
	if s.core.isDisposed() {
		return
	}

	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.core.notify()
	}
}

// Update applies fn to the current value and writes the result.
// The read does not register a dependency.
func (s *Signal[T]) Update(fn func(T) T) {
	if s.core.isDisposed() {
		return
	}

	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.core.notify()
	}
}

// Dispose clears the subscriber set and marks the cell permanently inert:
// subsequent writes are no-ops and reads return the last value. Disposal
// is irreversible.
func (s *Signal[T]) Dispose() {
	s.core.dispose()
}

// WithEquals returns the signal configured with a custom equality
// function. Useful when reflect.DeepEqual is too expensive or has the
// wrong semantics for T.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.core.id
}

// equals checks two values using the configured equality function.
func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals provides type-appropriate equality checking:
// == for the builtin scalar types, reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
