package memdom

import (
	"fmt"

	"github.com/reflow-ui/reflow/pkg/vdom"
)

// Dispatch delivers a synthetic event to the listener registered on the
// node with the given id. Handlers run outside the document lock, so a
// handler is free to trigger a re-render that mutates this document.
func (d *Document) Dispatch(id int, ev vdom.Event) error {
	d.mu.Lock()
	n := d.nodes[id]
	if n == nil || n.destroyed {
		d.mu.Unlock()
		return fmt.Errorf("memdom: dispatch %q to unknown node %d", ev.Type, id)
	}
	handler, ok := n.listeners[ev.Type]
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("memdom: node %d has no %q listener", id, ev.Type)
	}

	switch fn := handler.(type) {
	case func():
		fn()
	case func(vdom.Event):
		fn(ev)
	default:
		return fmt.Errorf("memdom: node %d has unsupported %q handler type %T", id, ev.Type, handler)
	}
	return nil
}
