package vdom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
	KindFragment             // Grouping without wrapper
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Props holds attributes, styles, raw properties, and event handlers,
// keyed by prop name. How a given key is applied to a live node is decided
// once by classifyProp, not resolved per use.
//
// Event handler values diff by function code identity, not by captured
// state; see propsEqual for the keying requirement this puts on children
// with per-item handler captures.
type Props map[string]any

// VNode is a virtual tree node: an immutable-by-convention description of
// UI structure built before realization.
//
// Each node carries an ownership slot for its realized live handle. The
// slot is set exactly once when the node mounts and cleared exactly once
// when it unmounts or when reconciliation carries the handle forward to a
// newer node. Fragments mount without a handle of their own.
type VNode struct {
	Kind     Kind     // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes, styles, properties, event handlers
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText

	// live is the realized handle owned by this node.
	live Handle

	// mounted tracks slot occupancy. Fragments set it with a nil handle.
	mounted bool
}

// Live returns the live handle realized for this node, or nil when the
// node is not mounted (or is a fragment).
func (v *VNode) Live() Handle {
	return v.live
}

// Mounted reports whether this node currently owns its realized resources.
func (v *VNode) Mounted() bool {
	return v.mounted
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
// Handler may be a func() or a func(Event).
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any
}

// Event is the payload a Host delivers to listeners when it dispatches a
// platform event into the live tree.
type Event struct {
	Type  string // "click", "input", ...
	Value string // Input value, when the event carries one
	Key   string // Keyboard key, when the event carries one
}
