// Package memdom provides an in-memory realization host for reflow trees.
//
// A Document implements vdom.Host with plain nodes that store attributes,
// styles, raw properties, and event listeners. It counts every mutation it
// performs and tracks how many live handles exist, which backs both the
// package's tests (a mount/unmount round trip must leave zero live
// handles; reconciling identical trees must perform zero operations) and
// the preview server's metrics. Dispatch delivers synthetic events to
// registered listeners, and HTML renders a snapshot of the realized tree.
package memdom

import (
	"fmt"
	"sync"

	"github.com/reflow-ui/reflow/pkg/vdom"
)

// Node is a realized element or text node in a Document.
type Node struct {
	id        int
	tag       string // "" for text nodes
	text      string
	attrs     map[string]string
	styles    map[string]string
	props     map[string]any
	listeners map[string]any
	children  []*Node
	parent    *Node
	destroyed bool
}

// ID returns the node's stable identifier, unique within its Document.
func (n *Node) ID() int { return n.id }

// Tag returns the element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// IsText reports whether this is a text node.
func (n *Node) IsText() bool { return n.tag == "" }

// Text returns the text content of a text node.
func (n *Node) Text() string { return n.text }

// Attr returns an attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// StyleValue returns a style entry and whether it is set.
func (n *Node) StyleValue(prop string) (string, bool) {
	v, ok := n.styles[prop]
	return v, ok
}

// Prop returns a raw property value and whether it is set.
func (n *Node) Prop(key string) (any, bool) {
	v, ok := n.props[key]
	return v, ok
}

// HasListener reports whether a listener is bound for the event.
func (n *Node) HasListener(event string) bool {
	_, ok := n.listeners[event]
	return ok
}

// Children returns a copy of the node's children in order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Ops counts host mutations performed by a Document.
type Ops struct {
	CreateElement  int
	CreateText     int
	SetText        int
	SetAttr        int
	RemoveAttr     int
	SetStyle       int
	RemoveStyle    int
	SetProp        int
	RemoveProp     int
	AddListener    int
	RemoveListener int
	Insert         int
	Remove         int
	Destroy        int
}

// Total returns the total number of operations counted.
func (o Ops) Total() int {
	return o.CreateElement + o.CreateText + o.SetText +
		o.SetAttr + o.RemoveAttr + o.SetStyle + o.RemoveStyle +
		o.SetProp + o.RemoveProp + o.AddListener + o.RemoveListener +
		o.Insert + o.Remove + o.Destroy
}

// Document is an in-memory live tree implementing vdom.Host.
type Document struct {
	mu     sync.Mutex
	root   *Node
	nodes  map[int]*Node
	nextID int
	live   int
	ops    Ops
}

// NewDocument creates an empty document. Its root is the mount target.
func NewDocument() *Document {
	d := &Document{
		nodes: make(map[int]*Node),
	}
	d.root = &Node{id: 0, tag: "#document"}
	d.nodes[0] = d.root
	d.nextID = 1
	return d
}

// Root returns the document root, used as the mount target handle.
func (d *Document) Root() *Node { return d.root }

// Live returns the number of realized handles not yet destroyed.
func (d *Document) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

// Ops returns a snapshot of the operation counters.
func (d *Document) Ops() Ops {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ops
}

// ResetOps zeroes the operation counters.
func (d *Document) ResetOps() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = Ops{}
}

// NodeByID returns a live node by id, or nil.
func (d *Document) NodeByID(id int) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.nodes[id]
	if n == nil || n.destroyed {
		return nil
	}
	return n
}

// asNode unwraps a handle produced by this document.
func asNode(h vdom.Handle) *Node {
	if h == nil {
		return nil
	}
	n, ok := h.(*Node)
	if !ok {
		panic(fmt.Sprintf("memdom: foreign handle %T", h))
	}
	if n.destroyed {
		panic(fmt.Sprintf("memdom: use of destroyed node %d", n.id))
	}
	return n
}

// CreateElement implements vdom.Host.
func (d *Document) CreateElement(tag string) vdom.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := &Node{
		id:  d.nextID,
		tag: tag,
	}
	d.nextID++
	d.nodes[n.id] = n
	d.live++
	d.ops.CreateElement++
	return n
}

// CreateText implements vdom.Host.
func (d *Document) CreateText(text string) vdom.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := &Node{
		id:   d.nextID,
		text: text,
	}
	d.nextID++
	d.nodes[n.id] = n
	d.live++
	d.ops.CreateText++
	return n
}

// SetText implements vdom.Host.
func (d *Document) SetText(h vdom.Handle, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	asNode(h).text = text
	d.ops.SetText++
}

// SetAttribute implements vdom.Host.
func (d *Document) SetAttribute(h vdom.Handle, key, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := asNode(h)
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	d.ops.SetAttr++
}

// RemoveAttribute implements vdom.Host.
func (d *Document) RemoveAttribute(h vdom.Handle, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(asNode(h).attrs, key)
	d.ops.RemoveAttr++
}

// SetStyle implements vdom.Host.
func (d *Document) SetStyle(h vdom.Handle, prop, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := asNode(h)
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	n.styles[prop] = value
	d.ops.SetStyle++
}

// RemoveStyle implements vdom.Host.
func (d *Document) RemoveStyle(h vdom.Handle, prop string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(asNode(h).styles, prop)
	d.ops.RemoveStyle++
}

// SetProperty implements vdom.Host.
func (d *Document) SetProperty(h vdom.Handle, key string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := asNode(h)
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[key] = value
	d.ops.SetProp++
}

// RemoveProperty implements vdom.Host.
func (d *Document) RemoveProperty(h vdom.Handle, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(asNode(h).props, key)
	d.ops.RemoveProp++
}

// AddListener implements vdom.Host.
func (d *Document) AddListener(h vdom.Handle, event string, handler any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := asNode(h)
	if n.listeners == nil {
		n.listeners = make(map[string]any)
	}
	n.listeners[event] = handler
	d.ops.AddListener++
}

// RemoveListener implements vdom.Host.
func (d *Document) RemoveListener(h vdom.Handle, event string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(asNode(h).listeners, event)
	d.ops.RemoveListener++
}

// InsertBefore implements vdom.Host. A nil before appends. A child that
// already has a parent is detached first, so the same call both inserts
// and moves.
func (d *Document) InsertBefore(parent, child, before vdom.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := asNode(parent)
	c := asNode(child)

	if c.parent != nil {
		c.parent.removeChild(c)
		c.parent = nil
	}

	if before == nil {
		p.children = append(p.children, c)
	} else {
		b := asNode(before)
		idx := p.indexOf(b)
		if idx < 0 {
			panic(fmt.Sprintf("memdom: insert before node %d which is not a child of node %d", b.id, p.id))
		}
		p.children = append(p.children, nil)
		copy(p.children[idx+1:], p.children[idx:])
		p.children[idx] = c
	}
	c.parent = p
	d.ops.Insert++
}

// RemoveChild implements vdom.Host.
func (d *Document) RemoveChild(parent, child vdom.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := asNode(parent)
	c := asNode(child)
	if !p.removeChild(c) {
		panic(fmt.Sprintf("memdom: node %d is not a child of node %d", c.id, p.id))
	}
	c.parent = nil
	d.ops.Remove++
}

// Destroy implements vdom.Host. The handle must already be detached.
func (d *Document) Destroy(h vdom.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := asNode(h)
	if n == d.root {
		panic("memdom: destroy of document root")
	}
	if n.parent != nil {
		panic(fmt.Sprintf("memdom: destroy of attached node %d", n.id))
	}
	n.destroyed = true
	delete(d.nodes, n.id)
	d.live--
	d.ops.Destroy++
}

// Clear implements vdom.Host: removes and destroys every descendant of
// parent.
func (d *Document) Clear(parent vdom.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := asNode(parent)
	for _, c := range p.children {
		d.destroySubtree(c)
	}
	p.children = nil
}

// destroySubtree releases a detached subtree, children first.
func (d *Document) destroySubtree(n *Node) {
	for _, c := range n.children {
		d.destroySubtree(c)
	}
	n.children = nil
	n.parent = nil
	n.destroyed = true
	delete(d.nodes, n.id)
	d.live--
	d.ops.Destroy++
}

// indexOf returns the index of c among n's children, or -1.
func (n *Node) indexOf(c *Node) int {
	for i, child := range n.children {
		if child == c {
			return i
		}
	}
	return -1
}

// removeChild splices c out of n's children, reporting success.
func (n *Node) removeChild(c *Node) bool {
	idx := n.indexOf(c)
	if idx < 0 {
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	return true
}
