// Package vdom provides reflow's virtual node tree and the reconciler
// that realizes it into live resources.
//
// # Core Types
//
// VNode is the tagged variant at the center of the package: an element, a
// text node, or a fragment. Props holds attributes, styles, raw
// properties, and event handlers. Attr and EventHandler build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// # Hosts
//
// A Host supplies the realize/release callbacks mapping virtual nodes to
// opaque live handles. The reconciler is host-agnostic: pkg/memdom is the
// reference in-memory host, and any platform widget tree can implement
// the same interface.
//
// # Reconciliation
//
// Reconciler.Reconcile compares a previous and next tree and applies the
// minimal set of host mutations: text rewritten only on change, props
// removed/changed/added through per-class handlers, children diffed
// positionally or — when any sibling carries a key — by stable identity,
// reusing live handles across reorders.
package vdom
