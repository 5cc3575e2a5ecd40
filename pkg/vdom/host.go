package vdom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Handle is an opaque live resource produced by a Host: a platform widget,
// a markup element, an in-memory node. The reconciler never looks inside.
type Handle any

// Host supplies the realize/release callbacks that map virtual nodes to
// and from live resources. Everything the reconciler does to the realized
// structure goes through this interface, which keeps the diff algorithm
// host-agnostic.
//
// InsertBefore with a nil before appends. Destroy releases the resource
// after it has been detached from its parent.
type Host interface {
	CreateElement(tag string) Handle
	CreateText(text string) Handle

	SetText(h Handle, text string)

	SetAttribute(h Handle, key, value string)
	RemoveAttribute(h Handle, key string)

	SetStyle(h Handle, prop, value string)
	RemoveStyle(h Handle, prop string)

	SetProperty(h Handle, key string, value any)
	RemoveProperty(h Handle, key string)

	AddListener(h Handle, event string, handler any)
	RemoveListener(h Handle, event string)

	InsertBefore(parent, child, before Handle)
	RemoveChild(parent, child Handle)
	Destroy(h Handle)

	// Clear removes and destroys every child of parent. Used by the mount
	// entry point to empty a target before the first mount.
	Clear(parent Handle)
}

// propClass partitions prop keys by how they are applied to a live node:
// attributes, the style map, event listeners, and raw properties each go
// through a different Host call.
type propClass uint8

const (
	propAttr propClass = iota
	propStyle
	propEvent
	propProperty
)

// rawProperties are keys applied as properties of the live node rather
// than serialized attributes.
var rawProperties = map[string]bool{
	"value":    true,
	"checked":  true,
	"selected": true,
	"disabled": true,
}

// classifyProp resolves how a prop key is applied. The classification is a
// function of the key alone and is resolved once per diff site.
func classifyProp(key string) propClass {
	switch {
	case key == "style":
		return propStyle
	case isEventKey(key):
		return propEvent
	case rawProperties[key]:
		return propProperty
	default:
		return propAttr
	}
}

// isEventKey returns true if the key names an event handler.
// Case-insensitive to catch onclick, onClick, OnLoad, etc.
func isEventKey(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// eventName strips the "on" prefix and lowercases the rest, producing the
// event name a Host binds ("onClick" -> "click").
func eventName(key string) string {
	return strings.ToLower(key[2:])
}

// styleMap coerces a style prop value into its map form. Nil for values
// that are not style maps.
func styleMap(v any) map[string]string {
	m, _ := v.(map[string]string)
	return m
}

// propsEqual compares two prop values for equality. Event handlers compare
// by function code identity: two instances of the same closure compare
// equal even when they capture different values, so a tree rebuilt on
// every render does not rebind its handlers each pass. The flip side is
// that a positionally-paired child keeps its previous handler binding when
// the new instance captures different per-item state. Children whose
// handlers capture per-item values must carry a Key so reconciliation
// pairs each child with its own previous incarnation.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func || rb.Kind() == reflect.Func {
		return ra.Kind() == rb.Kind() && ra.Pointer() == rb.Pointer()
	}

	return reflect.DeepEqual(a, b)
}

// propToString converts a prop value to its attribute string form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
