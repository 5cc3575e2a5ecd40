// Package reactive provides the fine-grained reactive core for reflow.
//
// Dependencies are discovered at runtime: reading a signal while an effect
// is executing subscribes that effect to the signal's changes. There is no
// separate registration call.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes the running effect, if any)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Effect runs side effects when dependencies change:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { /* cleanup */ }
//	})
//
// Derived[T] is an eagerly recomputed value published into a signal owned
// by the computation:
//
//	doubled := NewDerived(func() int { return count.Get() * 2 })
//
// # Batching
//
// Multiple signal updates can be batched so each affected effect runs at
// most once, observing either all of the batch's writes or none:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})
//
// # Execution Model
//
// Propagation is synchronous and cooperative: an unbatched write runs every
// dependent effect before Set returns, in subscription order. Tracking
// state is goroutine-scoped, so independent goroutines never share a
// tracking stack, but a given signal graph is expected to be driven from a
// single goroutine at a time.
package reactive
