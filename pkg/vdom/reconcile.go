package vdom

import (
	"fmt"
	"sort"
)

// Reconciler applies the difference between two virtual trees to the live
// structure realized by a Host. It mutates the trees in place: reused live
// handles move from the previous node's ownership slot to the next node's.
type Reconciler struct {
	host Host
}

// NewReconciler creates a reconciler over the given host.
func NewReconciler(host Host) *Reconciler {
	return &Reconciler{host: host}
}

// Reconcile diffs prev against next under parent and applies the minimal
// set of host mutations. Either side may be nil: a nil prev mounts next
// fully, a nil next unmounts prev fully. Returns the live handle carried
// by next (nil for fragments and fully-unmounted trees).
//
// Reconciling against a node whose live handle was already released is a
// caller lifecycle bug and panics rather than silently skipping, since
// skipping would mask leaked resources.
func (r *Reconciler) Reconcile(prev, next *VNode, parent Handle) Handle {
	r.reconcile(prev, next, parent, nil)
	return firstHandle(next)
}

// reconcile dispatches on the (prev, next) pair. before is the live handle
// of the following sibling, used as the insertion point for mounts and
// replacements; nil appends.
func (r *Reconciler) reconcile(prev, next *VNode, parent, before Handle) {
	switch {
	case prev == nil && next == nil:
		return

	case prev == nil:
		r.mount(next, parent, before)

	case next == nil:
		r.unmount(prev, parent)

	default:
		if !prev.mounted {
			panic(fmt.Sprintf("vdom: reconcile against released %s node; its live handle was already cleared", prev.Kind))
		}

		if prev.Kind != next.Kind {
			r.replace(prev, next, parent)
			return
		}

		switch prev.Kind {
		case KindText:
			r.patchText(prev, next)
		case KindElement:
			if prev.Tag != next.Tag {
				// No partial reuse across a tag change.
				r.replace(prev, next, parent)
				return
			}
			r.patchElement(prev, next)
		case KindFragment:
			next.live, next.mounted = nil, true
			prev.mounted = false
			r.reconcileChildren(prev, next, parent, before)
		}
	}
}

// replace unmounts prev and mounts next in its place. The fresh tree is
// inserted before prev's first live handle, so sibling order is preserved
// without the host exposing sibling queries.
func (r *Reconciler) replace(prev, next *VNode, parent Handle) {
	anchor := firstHandle(prev)
	r.mount(next, parent, anchor)
	r.unmount(prev, parent)
}

// patchText carries the live handle forward and rewrites the content only
// if the text actually differs.
func (r *Reconciler) patchText(prev, next *VNode) {
	h := prev.live
	next.live, next.mounted = h, true
	prev.live, prev.mounted = nil, false

	if prev.Text != next.Text {
		r.host.SetText(h, next.Text)
	}
}

// patchElement carries the live handle forward, then diffs props and
// children in place.
func (r *Reconciler) patchElement(prev, next *VNode) {
	h := prev.live
	next.live, next.mounted = h, true
	prev.live, prev.mounted = nil, false

	r.patchProps(h, prev.Props, next.Props)
	r.reconcileChildren(prev, next, h, nil)
}

// patchProps applies the prop delta: props absent on the new node are
// removed or detached, changed values go through the handler for their
// class, and unchanged values are skipped entirely.
func (r *Reconciler) patchProps(h Handle, prev, next Props) {
	for _, key := range sortedKeys(prev) {
		prevVal := prev[key]
		nextVal, exists := next[key]
		class := classifyProp(key)

		if !exists {
			r.removeProp(h, key, class, prevVal)
			continue
		}

		if class == propStyle {
			r.patchStyle(h, styleMap(prevVal), styleMap(nextVal))
			continue
		}

		if !propsEqual(prevVal, nextVal) {
			if class == propEvent {
				r.host.RemoveListener(h, eventName(key))
			}
			r.applyProp(h, key, nextVal)
		}
	}

	for _, key := range sortedKeys(next) {
		if _, exists := prev[key]; exists {
			continue
		}
		r.applyProp(h, key, next[key])
	}
}

// patchStyle diffs two style maps entry by entry.
func (r *Reconciler) patchStyle(h Handle, prev, next map[string]string) {
	for _, prop := range sortedStyleKeys(prev) {
		if _, exists := next[prop]; !exists {
			r.host.RemoveStyle(h, prop)
		}
	}
	for _, prop := range sortedStyleKeys(next) {
		if prev[prop] != next[prop] {
			r.host.SetStyle(h, prop, next[prop])
		}
	}
}

// applyProp applies a single prop through the handler for its class.
func (r *Reconciler) applyProp(h Handle, key string, value any) {
	switch classifyProp(key) {
	case propStyle:
		for _, prop := range sortedStyleKeys(styleMap(value)) {
			r.host.SetStyle(h, prop, styleMap(value)[prop])
		}
	case propEvent:
		r.host.AddListener(h, eventName(key), value)
	case propProperty:
		r.host.SetProperty(h, key, value)
	default:
		r.host.SetAttribute(h, key, propToString(value))
	}
}

// removeProp removes a single prop through the handler for its class.
func (r *Reconciler) removeProp(h Handle, key string, class propClass, prevVal any) {
	switch class {
	case propStyle:
		for _, prop := range sortedStyleKeys(styleMap(prevVal)) {
			r.host.RemoveStyle(h, prop)
		}
	case propEvent:
		r.host.RemoveListener(h, eventName(key))
	case propProperty:
		r.host.RemoveProperty(h, key)
	default:
		r.host.RemoveAttribute(h, key)
	}
}

// mount realizes v and its descendants, inserting before the given
// sibling handle (nil appends). Each node's ownership slot is set exactly
// once.
func (r *Reconciler) mount(v *VNode, parent, before Handle) {
	if v == nil {
		return
	}
	if v.mounted {
		panic(fmt.Sprintf("vdom: mount of already-mounted %s node", v.Kind))
	}

	switch v.Kind {
	case KindText:
		h := r.host.CreateText(v.Text)
		v.live, v.mounted = h, true
		r.host.InsertBefore(parent, h, before)

	case KindElement:
		h := r.host.CreateElement(v.Tag)
		v.live, v.mounted = h, true
		for _, key := range sortedKeys(v.Props) {
			r.applyProp(h, key, v.Props[key])
		}
		for _, c := range v.Children {
			r.mount(c, h, nil)
		}
		r.host.InsertBefore(parent, h, before)

	case KindFragment:
		v.live, v.mounted = nil, true
		for _, c := range v.Children {
			r.mount(c, parent, before)
		}
	}
}

// unmount releases v and its descendants, children before parent, and
// detaches event bindings. Each node's ownership slot is cleared exactly
// once; a second unmount panics.
func (r *Reconciler) unmount(v *VNode, parent Handle) {
	if v == nil {
		return
	}
	if !v.mounted {
		panic(fmt.Sprintf("vdom: unmount of %s node whose live handle was already released", v.Kind))
	}

	switch v.Kind {
	case KindFragment:
		v.mounted = false
		for _, c := range v.Children {
			r.unmount(c, parent)
		}

	case KindText:
		h := v.live
		v.live, v.mounted = nil, false
		r.host.RemoveChild(parent, h)
		r.host.Destroy(h)

	case KindElement:
		h := v.live
		v.live, v.mounted = nil, false

		for _, c := range v.Children {
			r.unmount(c, h)
		}
		for _, key := range sortedKeys(v.Props) {
			if isEventKey(key) {
				r.host.RemoveListener(h, eventName(key))
			}
		}

		r.host.RemoveChild(parent, h)
		r.host.Destroy(h)
	}
}

// reconcileChildren picks the child diffing strategy: keyed when any child
// on either side carries a key, positional otherwise. before is the live
// handle following the child list in the realized parent; fragments diffed
// mid-parent pass their own following sibling so growth lands in place.
func (r *Reconciler) reconcileChildren(prev, next *VNode, parent, before Handle) {
	if hasKeys(prev.Children) || hasKeys(next.Children) {
		r.reconcileKeyed(prev.Children, next.Children, parent, before)
	} else {
		r.reconcilePositional(prev.Children, next.Children, parent, before)
	}
}

// reconcilePositional pairs children index by index up to the shorter
// length, unmounts surplus old children, and mounts surplus new ones. The
// walk runs back to front threading the insertion anchor, so surplus
// mounts insert before the list's following sibling instead of appending
// to the end of the realized parent.
func (r *Reconciler) reconcilePositional(prev, next []*VNode, parent, before Handle) {
	n := len(prev)
	if len(next) < n {
		n = len(next)
	}

	for i := n; i < len(prev); i++ {
		r.unmount(prev[i], parent)
	}

	for i := len(next) - 1; i >= 0; i-- {
		if i < n {
			r.reconcile(prev[i], next[i], parent, before)
		} else {
			r.mount(next[i], parent, before)
		}
		if h := firstHandle(next[i]); h != nil {
			before = h
		}
	}
}

// reconcileKeyed reuses live handles across reorders, insertions, and
// removals by pairing children on their keys. Unkeyed children
// interleaved among keyed siblings pair positionally among themselves.
// Matched children whose index changed are explicitly repositioned with
// InsertBefore so the live sibling order always matches the new tree.
// before anchors the whole list: fresh tail mounts insert before it.
func (r *Reconciler) reconcileKeyed(prev, next []*VNode, parent, before Handle) {
	prevByKey := make(map[string]int)
	var prevUnkeyed []int
	for i, child := range prev {
		if key := childKey(child); key != "" {
			prevByKey[key] = i
		} else {
			prevUnkeyed = append(prevUnkeyed, i)
		}
	}

	matched := make([]bool, len(prev))
	pairedWith := make([]int, len(next)) // old index per new child, -1 = fresh mount
	unkeyedCursor := 0

	for j, child := range next {
		pairedWith[j] = -1
		if key := childKey(child); key != "" {
			if i, ok := prevByKey[key]; ok {
				pairedWith[j] = i
				matched[i] = true
			}
		} else if unkeyedCursor < len(prevUnkeyed) {
			i := prevUnkeyed[unkeyedCursor]
			unkeyedCursor++
			pairedWith[j] = i
			matched[i] = true
		}
	}

	// Old children with no pair release their resources before any
	// placement, so reused handles never collide with stale siblings.
	for i, child := range prev {
		if !matched[i] {
			r.unmount(child, parent)
		}
	}

	// Walk the new children back to front so each insertion point is the
	// live handle of the already-placed following sibling.
	for j := len(next) - 1; j >= 0; j-- {
		child := next[j]
		if i := pairedWith[j]; i >= 0 {
			r.reconcile(prev[i], child, parent, before)
			if i != j {
				r.move(child, parent, before)
			}
		} else {
			r.mount(child, parent, before)
		}
		if h := firstHandle(child); h != nil {
			before = h
		}
	}
}

// move repositions an already-realized node before the given sibling.
// Fragments move each realized child in order.
func (r *Reconciler) move(v *VNode, parent, before Handle) {
	if v == nil {
		return
	}
	if v.Kind == KindFragment {
		for _, c := range v.Children {
			r.move(c, parent, before)
		}
		return
	}
	if v.live != nil {
		r.host.InsertBefore(parent, v.live, before)
	}
}

// firstHandle returns the first live handle realized under v: the node's
// own handle, or for fragments the handle of the first realized child.
func firstHandle(v *VNode) Handle {
	if v == nil {
		return nil
	}
	if v.Kind == KindFragment {
		for _, c := range v.Children {
			if h := firstHandle(c); h != nil {
				return h
			}
		}
		return nil
	}
	return v.live
}

// childKey extracts a child's reconciliation key. The Key field wins; a
// "key" prop is the fallback.
func childKey(node *VNode) string {
	if node == nil {
		return ""
	}
	if node.Key != "" {
		return node.Key
	}
	if node.Props == nil {
		return ""
	}
	if key, ok := node.Props["key"].(string); ok {
		return key
	}
	return ""
}

// hasKeys returns true if any child has a key.
func hasKeys(children []*VNode) bool {
	for _, child := range children {
		if childKey(child) != "" {
			return true
		}
	}
	return false
}

// sortedKeys returns prop keys in stable order, skipping the
// reconciliation key, which is not a real prop.
func sortedKeys(props Props) []string {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for key := range props {
		if key == "key" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// sortedStyleKeys returns style map keys in stable order.
func sortedStyleKeys(styles map[string]string) []string {
	if len(styles) == 0 {
		return nil
	}
	keys := make([]string, 0, len(styles))
	for key := range styles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
