package vdom_test

import (
	"testing"

	"github.com/reflow-ui/reflow/pkg/memdom"
	"github.com/reflow-ui/reflow/pkg/vdom"
)

// childTexts returns the text content of each element child, taking the
// first text grandchild as the element's label.
func childTexts(n *memdom.Node) []string {
	var out []string
	for _, c := range n.Children() {
		if c.IsText() {
			out = append(out, c.Text())
			continue
		}
		label := ""
		for _, gc := range c.Children() {
			if gc.IsText() {
				label = gc.Text()
				break
			}
		}
		out = append(out, label)
	}
	return out
}

func handleOf(t *testing.T, v *vdom.VNode) *memdom.Node {
	t.Helper()
	h, ok := v.Live().(*memdom.Node)
	if !ok {
		t.Fatalf("node has no live handle")
	}
	return h
}

func TestMountRealizesTree(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	tree := vdom.Div(vdom.Class("card"),
		vdom.Span("hello"),
		vdom.Text("world"),
	)
	rec.Reconcile(nil, tree, doc.Root())

	if !tree.Mounted() {
		t.Fatal("root not marked mounted")
	}

	kids := doc.Root().Children()
	if len(kids) != 1 {
		t.Fatalf("root children = %d, want 1", len(kids))
	}
	div := kids[0]
	if div.Tag() != "div" {
		t.Errorf("tag = %q, want div", div.Tag())
	}
	if cls, _ := div.Attr("class"); cls != "card" {
		t.Errorf("class = %q, want card", cls)
	}
	if got := childTexts(div); len(got) != 2 || got[0] != "hello" || got[1] != "world" {
		t.Errorf("children = %v, want [hello world]", got)
	}
}

func TestMountUnmountRoundTrip(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	tree := vdom.Div(
		vdom.Ul(
			vdom.Li(vdom.Key("a"), "A"),
			vdom.Li(vdom.Key("b"), "B"),
		),
		vdom.Button("go", vdom.OnClick(func() {})),
	)
	rec.Reconcile(nil, tree, doc.Root())

	if doc.Live() == 0 {
		t.Fatal("nothing realized")
	}

	rec.Reconcile(tree, nil, doc.Root())

	if got := doc.Live(); got != 0 {
		t.Errorf("live handles after unmount = %d, want 0", got)
	}
	if tree.Mounted() {
		t.Error("root still marked mounted after unmount")
	}
}

func TestReconcileIdenticalTreesIsZeroOps(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	build := func() *vdom.VNode {
		return vdom.Div(vdom.Class("x"),
			vdom.Span(vdom.Style(map[string]string{"color": "red"}), "same"),
			vdom.P("text"),
		)
	}

	prev := build()
	rec.Reconcile(nil, prev, doc.Root())

	doc.ResetOps()
	rec.Reconcile(prev, build(), doc.Root())

	if got := doc.Ops().Total(); got != 0 {
		t.Errorf("ops for identical trees = %d, want 0 (%+v)", got, doc.Ops())
	}
}

func TestTextOnlyChangeRewritesOneText(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Div(vdom.Span("a"))
	rec.Reconcile(nil, prev, doc.Root())

	divHandle := handleOf(t, prev)
	spanHandle := handleOf(t, prev.Children[0])

	next := vdom.Div(vdom.Span("b"))
	doc.ResetOps()
	rec.Reconcile(prev, next, doc.Root())

	ops := doc.Ops()
	if ops.SetText != 1 || ops.Total() != 1 {
		t.Errorf("ops = %+v, want exactly one SetText", ops)
	}
	if handleOf(t, next) != divHandle {
		t.Error("div handle not reused")
	}
	if handleOf(t, next.Children[0]) != spanHandle {
		t.Error("span handle not reused")
	}
	if got := childTexts(divHandle); len(got) != 1 || got[0] != "b" {
		t.Errorf("children = %v, want [b]", got)
	}
}

func TestPropDiff(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Input(
		vdom.ID("field"),
		vdom.Placeholder("old"),
		vdom.Value("v1"),
		vdom.Style(map[string]string{"color": "red", "width": "10px"}),
	)
	rec.Reconcile(nil, prev, doc.Root())
	h := handleOf(t, prev)

	// id unchanged, type added, value changed, checked added, placeholder
	// removed, style: color changed and width removed.
	next := vdom.Input(
		vdom.ID("field"),
		vdom.Type("text"),
		vdom.Value("v2"),
		vdom.Checked(true),
		vdom.Style(map[string]string{"color": "blue"}),
	)
	rec.Reconcile(prev, next, doc.Root())

	if _, ok := h.Attr("placeholder"); ok {
		t.Error("removed attribute still present")
	}
	if typ, _ := h.Attr("type"); typ != "text" {
		t.Errorf("type = %q, want text", typ)
	}
	if id, _ := h.Attr("id"); id != "field" {
		t.Errorf("id = %q, want field", id)
	}
	if v, _ := h.Prop("value"); v != "v2" {
		t.Errorf("value property = %v, want v2", v)
	}
	if c, _ := h.Prop("checked"); c != true {
		t.Errorf("checked property = %v, want true", c)
	}
	if color, _ := h.StyleValue("color"); color != "blue" {
		t.Errorf("color = %q, want blue", color)
	}
	if _, ok := h.StyleValue("width"); ok {
		t.Error("removed style entry still present")
	}
}

func TestEventRebindAndRemoval(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	hits := ""
	prev := vdom.Button("go",
		vdom.OnClick(func() { hits += "old" }),
		vdom.OnInput(func(vdom.Event) {}),
	)
	rec.Reconcile(nil, prev, doc.Root())
	h := handleOf(t, prev)

	next := vdom.Button("go",
		vdom.OnClick(func() { hits += "new" }),
	)
	rec.Reconcile(prev, next, doc.Root())

	if h.HasListener("input") {
		t.Error("removed listener still bound")
	}
	if err := doc.Dispatch(h.ID(), vdom.Event{Type: "click"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if hits != "new" {
		t.Errorf("hits = %q, want %q: stale handler fired", hits, "new")
	}
}

func TestKeyedSwapReusesHandles(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Ul(
		vdom.Li(vdom.Key("1"), "A"),
		vdom.Li(vdom.Key("2"), "B"),
	)
	rec.Reconcile(nil, prev, doc.Root())

	ul := handleOf(t, prev)
	hA := handleOf(t, prev.Children[0])
	hB := handleOf(t, prev.Children[1])

	next := vdom.Ul(
		vdom.Li(vdom.Key("2"), "B"),
		vdom.Li(vdom.Key("1"), "A"),
	)
	doc.ResetOps()
	rec.Reconcile(prev, next, doc.Root())

	ops := doc.Ops()
	if ops.CreateElement != 0 || ops.CreateText != 0 || ops.Destroy != 0 {
		t.Errorf("ops = %+v, want no creates or destroys on a swap", ops)
	}
	if handleOf(t, next.Children[0]) != hB || handleOf(t, next.Children[1]) != hA {
		t.Error("handles not reused across the swap")
	}
	if got := childTexts(ul); len(got) != 2 || got[0] != "B" || got[1] != "A" {
		t.Errorf("live order = %v, want [B A]", got)
	}
}

func TestKeyedInsertAndRemove(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Ul(
		vdom.Li(vdom.Key("a"), "A"),
		vdom.Li(vdom.Key("b"), "B"),
		vdom.Li(vdom.Key("c"), "C"),
	)
	rec.Reconcile(nil, prev, doc.Root())
	ul := handleOf(t, prev)
	hA := handleOf(t, prev.Children[0])
	hC := handleOf(t, prev.Children[2])

	// Remove b, insert d in the middle.
	next := vdom.Ul(
		vdom.Li(vdom.Key("a"), "A"),
		vdom.Li(vdom.Key("d"), "D"),
		vdom.Li(vdom.Key("c"), "C"),
	)
	doc.ResetOps()
	rec.Reconcile(prev, next, doc.Root())

	ops := doc.Ops()
	if ops.CreateElement != 1 {
		t.Errorf("CreateElement = %d, want 1", ops.CreateElement)
	}
	if handleOf(t, next.Children[0]) != hA || handleOf(t, next.Children[2]) != hC {
		t.Error("surviving keyed handles not reused")
	}
	if got := childTexts(ul); len(got) != 3 || got[0] != "A" || got[1] != "D" || got[2] != "C" {
		t.Errorf("live order = %v, want [A D C]", got)
	}
}

func TestKeyedWithUnkeyedInterleave(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Ul(
		vdom.Li(vdom.Key("a"), "A"),
		vdom.Li("x"),
		vdom.Li(vdom.Key("b"), "B"),
	)
	rec.Reconcile(nil, prev, doc.Root())
	ul := handleOf(t, prev)
	hX := handleOf(t, prev.Children[1])

	next := vdom.Ul(
		vdom.Li(vdom.Key("b"), "B"),
		vdom.Li("x"),
		vdom.Li(vdom.Key("a"), "A"),
	)
	doc.ResetOps()
	rec.Reconcile(prev, next, doc.Root())

	if got := doc.Ops().CreateElement; got != 0 {
		t.Errorf("CreateElement = %d, want 0: unkeyed sibling should pair positionally", got)
	}
	if handleOf(t, next.Children[1]) != hX {
		t.Error("unkeyed sibling handle not reused")
	}
	if got := childTexts(ul); len(got) != 3 || got[0] != "B" || got[1] != "x" || got[2] != "A" {
		t.Errorf("live order = %v, want [B x A]", got)
	}
}

func TestTagChangeReplacesInPlace(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Div(
		vdom.Span("first"),
		vdom.Span("middle"),
		vdom.Span("last"),
	)
	rec.Reconcile(nil, prev, doc.Root())
	div := handleOf(t, prev)
	middleHandle := handleOf(t, prev.Children[1])

	next := vdom.Div(
		vdom.Span("first"),
		vdom.Em("middle"),
		vdom.Span("last"),
	)
	rec.Reconcile(prev, next, doc.Root())

	if handleOf(t, next.Children[1]) == middleHandle {
		t.Error("handle reused across tag change")
	}
	kids := div.Children()
	if len(kids) != 3 || kids[1].Tag() != "em" {
		t.Fatalf("middle child tag = %q, want em", kids[1].Tag())
	}
	if got := childTexts(div); got[0] != "first" || got[1] != "middle" || got[2] != "last" {
		t.Errorf("live order = %v, want [first middle last]", got)
	}
}

func TestKindChangeReplaces(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Div(vdom.Span("x"))
	rec.Reconcile(nil, prev, doc.Root())

	next := vdom.Div(vdom.Text("x"))
	rec.Reconcile(prev, next, doc.Root())

	div := handleOf(t, next)
	kids := div.Children()
	if len(kids) != 1 || !kids[0].IsText() {
		t.Fatalf("child is not a text node")
	}
	if kids[0].Text() != "x" {
		t.Errorf("text = %q, want x", kids[0].Text())
	}
}

func TestFragmentChildrenShareParent(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	tree := vdom.Div(
		vdom.Span("before"),
		vdom.Fragment(
			vdom.Span("f1"),
			vdom.Span("f2"),
		),
		vdom.Span("after"),
	)
	rec.Reconcile(nil, tree, doc.Root())

	div := handleOf(t, tree)
	if got := childTexts(div); len(got) != 4 {
		t.Fatalf("children = %v, want 4 flattened children", got)
	}

	rec.Reconcile(tree, nil, doc.Root())
	if got := doc.Live(); got != 0 {
		t.Errorf("live handles after unmount = %d, want 0", got)
	}
}

func TestReconcileAgainstReleasedNodePanics(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	tree := vdom.Div()
	rec.Reconcile(nil, tree, doc.Root())
	rec.Reconcile(tree, nil, doc.Root())

	defer func() {
		if recover() == nil {
			t.Error("expected panic on reconciling a released node")
		}
	}()
	rec.Reconcile(tree, vdom.Div(), doc.Root())
}

func TestUnmountReleasedNodePanics(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	tree := vdom.Span("x")
	rec.Reconcile(nil, tree, doc.Root())
	rec.Reconcile(tree, nil, doc.Root())

	defer func() {
		if recover() == nil {
			t.Error("expected panic on double unmount")
		}
	}()
	rec.Reconcile(tree, nil, doc.Root())
}

func TestFragmentGrowthKeepsSiblingOrder(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Div(
		vdom.Fragment(vdom.Span("a")),
		vdom.P("tail"),
	)
	rec.Reconcile(nil, prev, doc.Root())
	div := handleOf(t, prev)

	// The fragment grows by one child; the new span must land before the
	// sibling that follows the fragment, not at the end of the div.
	next := vdom.Div(
		vdom.Fragment(vdom.Span("a"), vdom.Span("b")),
		vdom.P("tail"),
	)
	rec.Reconcile(prev, next, doc.Root())

	if got := childTexts(div); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "tail" {
		t.Errorf("live order = %v, want [a b tail]", got)
	}
}

func TestKeyedFragmentAppendKeepsSiblingOrder(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Div(
		vdom.Fragment(vdom.Li(vdom.Key("a"), "A")),
		vdom.P("tail"),
	)
	rec.Reconcile(nil, prev, doc.Root())
	div := handleOf(t, prev)
	hA := handleOf(t, prev.Children[0].Children[0])

	next := vdom.Div(
		vdom.Fragment(
			vdom.Li(vdom.Key("a"), "A"),
			vdom.Li(vdom.Key("b"), "B"),
		),
		vdom.P("tail"),
	)
	rec.Reconcile(prev, next, doc.Root())

	if handleOf(t, next.Children[0].Children[0]) != hA {
		t.Error("surviving keyed handle not reused")
	}
	if got := childTexts(div); len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "tail" {
		t.Errorf("live order = %v, want [A B tail]", got)
	}
}

func TestPositionalGrowAndShrink(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	prev := vdom.Div(vdom.Span("a"))
	rec.Reconcile(nil, prev, doc.Root())
	div := handleOf(t, prev)

	next := vdom.Div(vdom.Span("a"), vdom.Span("b"), vdom.Span("c"))
	rec.Reconcile(prev, next, doc.Root())
	if got := childTexts(div); len(got) != 3 {
		t.Fatalf("children = %v, want 3", got)
	}

	final := vdom.Div(vdom.Span("a"))
	rec.Reconcile(next, final, doc.Root())
	if got := childTexts(div); len(got) != 1 || got[0] != "a" {
		t.Errorf("children = %v, want [a]", got)
	}
}

// Handlers compare by function code identity: rebuilding the same closure
// on every render does not rebind it, even when the new instance captures
// a different value. Children whose handlers capture per-item state must
// carry keys so each pairs with its own previous incarnation.
func TestSameCodeHandlerKeepsOriginalBinding(t *testing.T) {
	doc := memdom.NewDocument()
	rec := vdom.NewReconciler(doc)

	var got string
	build := func(capture string) *vdom.VNode {
		return vdom.Div(
			vdom.Button("go", vdom.OnClick(func() { got = capture })),
		)
	}

	prev := build("first")
	rec.Reconcile(nil, prev, doc.Root())
	btn := handleOf(t, prev.Children[0])

	next := build("second")
	doc.ResetOps()
	rec.Reconcile(prev, next, doc.Root())

	ops := doc.Ops()
	if ops.AddListener != 0 || ops.RemoveListener != 0 {
		t.Errorf("ops = %+v, want no listener churn for a same-code handler", ops)
	}
	if err := doc.Dispatch(btn.ID(), vdom.Event{Type: "click"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got != "first" {
		t.Errorf("handler capture = %q, want the original binding %q", got, "first")
	}
}
