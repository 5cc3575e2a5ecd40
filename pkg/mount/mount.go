// Package mount provides the entry points that realize a virtual tree
// into a host and keep it reconciled against reactive state.
package mount

import (
	"github.com/reflow-ui/reflow/pkg/reactive"
	"github.com/reflow-ui/reflow/pkg/vdom"
)

// Disposer tears down a mounted tree: it unmounts every realized node and
// releases every signal subscription the mount created. Idempotent.
type Disposer func()

// options configures the scoped render loop.
type options struct {
	afterRender func()
}

// Option configures RenderScoped.
type Option func(*options)

// AfterRender registers a callback invoked after every reconciliation
// pass, including the initial mount. Hosts use it to publish snapshots or
// record metrics once the live tree has settled.
func AfterRender(fn func()) Option {
	return func(o *options) {
		o.afterRender = fn
	}
}

// Render clears the target, mounts root into it, and returns a disposer
// that unmounts the whole tree.
func Render(root *vdom.VNode, host vdom.Host, target vdom.Handle) Disposer {
	host.Clear(target)

	rec := vdom.NewReconciler(host)
	rec.Reconcile(nil, root, target)

	disposed := false
	return func() {
		if disposed {
			return
		}
		disposed = true
		rec.Reconcile(root, nil, target)
	}
}

// RenderScoped wraps the tree-building function in an effect inside a
// fresh scope: any signal read while constructing the tree re-runs the
// effect, which reconciles the newly built tree against the previous one.
// The returned disposer stops the effect, disposes the scope, and
// unmounts the tree.
func RenderScoped(build func() *vdom.VNode, host vdom.Host, target vdom.Handle, opts ...Option) Disposer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	host.Clear(target)

	rec := vdom.NewReconciler(host)
	scope := reactive.NewScope(nil)

	var current *vdom.VNode
	scope.Run(func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			next := build()
			rec.Reconcile(current, next, target)
			current = next
			if o.afterRender != nil {
				o.afterRender()
			}
			return nil
		})
	})

	disposed := false
	return func() {
		if disposed {
			return
		}
		disposed = true
		scope.Dispose()
		if current != nil {
			rec.Reconcile(current, nil, target)
			current = nil
		}
	}
}
