package memdom

import (
	"strings"
	"testing"

	"github.com/reflow-ui/reflow/pkg/vdom"
)

func TestCreateAndInsert(t *testing.T) {
	doc := NewDocument()

	div := doc.CreateElement("div")
	text := doc.CreateText("hello")
	doc.InsertBefore(doc.Root(), div, nil)
	doc.InsertBefore(div, text, nil)

	if got := doc.Live(); got != 2 {
		t.Errorf("Live() = %d, want 2", got)
	}

	n := div.(*Node)
	kids := n.Children()
	if len(kids) != 1 || kids[0].Text() != "hello" {
		t.Errorf("children = %v", kids)
	}
	if kids[0].Parent() != n {
		t.Error("parent not set")
	}
}

func TestInsertBeforeSibling(t *testing.T) {
	doc := NewDocument()

	a := doc.CreateElement("a")
	b := doc.CreateElement("b")
	c := doc.CreateElement("c")
	doc.InsertBefore(doc.Root(), a, nil)
	doc.InsertBefore(doc.Root(), c, nil)
	doc.InsertBefore(doc.Root(), b, c)

	var tags []string
	for _, n := range doc.Root().Children() {
		tags = append(tags, n.Tag())
	}
	if strings.Join(tags, "") != "abc" {
		t.Errorf("order = %v, want [a b c]", tags)
	}
}

func TestInsertMovesAttachedChild(t *testing.T) {
	doc := NewDocument()

	a := doc.CreateElement("a")
	b := doc.CreateElement("b")
	doc.InsertBefore(doc.Root(), a, nil)
	doc.InsertBefore(doc.Root(), b, nil)

	// Reinsert a before nothing: moves it to the end.
	doc.InsertBefore(doc.Root(), a, nil)

	kids := doc.Root().Children()
	if len(kids) != 2 || kids[0].Tag() != "b" || kids[1].Tag() != "a" {
		t.Errorf("order after move = [%s %s], want [b a]", kids[0].Tag(), kids[1].Tag())
	}
}

func TestRemoveAndDestroy(t *testing.T) {
	doc := NewDocument()

	el := doc.CreateElement("div")
	doc.InsertBefore(doc.Root(), el, nil)
	doc.RemoveChild(doc.Root(), el)
	doc.Destroy(el)

	if got := doc.Live(); got != 0 {
		t.Errorf("Live() = %d, want 0", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on use of destroyed node")
		}
	}()
	doc.SetText(el, "late")
}

func TestDestroyAttachedNodePanics(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	doc.InsertBefore(doc.Root(), el, nil)

	defer func() {
		if recover() == nil {
			t.Error("expected panic destroying an attached node")
		}
	}()
	doc.Destroy(el)
}

func TestOpsCounting(t *testing.T) {
	doc := NewDocument()

	el := doc.CreateElement("div")
	doc.SetAttribute(el, "class", "x")
	doc.SetStyle(el, "color", "red")
	doc.SetProperty(el, "value", "v")
	doc.AddListener(el, "click", func() {})
	doc.InsertBefore(doc.Root(), el, nil)

	ops := doc.Ops()
	if ops.CreateElement != 1 || ops.SetAttr != 1 || ops.SetStyle != 1 ||
		ops.SetProp != 1 || ops.AddListener != 1 || ops.Insert != 1 {
		t.Errorf("ops = %+v", ops)
	}
	if ops.Total() != 6 {
		t.Errorf("Total() = %d, want 6", ops.Total())
	}

	doc.ResetOps()
	if doc.Ops().Total() != 0 {
		t.Error("ResetOps did not zero the counters")
	}
}

func TestClearDestroysSubtrees(t *testing.T) {
	doc := NewDocument()

	div := doc.CreateElement("div")
	span := doc.CreateElement("span")
	text := doc.CreateText("x")
	doc.InsertBefore(doc.Root(), div, nil)
	doc.InsertBefore(div, span, nil)
	doc.InsertBefore(span, text, nil)

	doc.Clear(doc.Root())

	if got := doc.Live(); got != 0 {
		t.Errorf("Live() after Clear = %d, want 0", got)
	}
	if got := len(doc.Root().Children()); got != 0 {
		t.Errorf("root children = %d, want 0", got)
	}
}

func TestDispatch(t *testing.T) {
	doc := NewDocument()

	clicks := 0
	var lastInput vdom.Event

	btn := doc.CreateElement("button")
	doc.AddListener(btn, "click", func() { clicks++ })
	doc.AddListener(btn, "input", func(ev vdom.Event) { lastInput = ev })
	doc.InsertBefore(doc.Root(), btn, nil)

	id := btn.(*Node).ID()
	if err := doc.Dispatch(id, vdom.Event{Type: "click"}); err != nil {
		t.Fatalf("Dispatch click: %v", err)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	if err := doc.Dispatch(id, vdom.Event{Type: "input", Value: "abc"}); err != nil {
		t.Fatalf("Dispatch input: %v", err)
	}
	if lastInput.Value != "abc" {
		t.Errorf("input value = %q, want abc", lastInput.Value)
	}
}

func TestDispatchErrors(t *testing.T) {
	doc := NewDocument()

	if err := doc.Dispatch(999, vdom.Event{Type: "click"}); err == nil {
		t.Error("expected error dispatching to unknown node")
	}

	el := doc.CreateElement("div")
	doc.InsertBefore(doc.Root(), el, nil)
	if err := doc.Dispatch(el.(*Node).ID(), vdom.Event{Type: "click"}); err == nil {
		t.Error("expected error dispatching without a listener")
	}
}

func TestHTMLSnapshot(t *testing.T) {
	doc := NewDocument()

	div := doc.CreateElement("div")
	doc.SetAttribute(div, "class", "card")
	doc.SetStyle(div, "color", "red")
	text := doc.CreateText("a < b")
	doc.InsertBefore(doc.Root(), div, nil)
	doc.InsertBefore(div, text, nil)

	br := doc.CreateElement("br")
	doc.InsertBefore(div, br, nil)

	html := doc.HTML()

	if !strings.Contains(html, `class="card"`) {
		t.Errorf("missing class attribute: %s", html)
	}
	if !strings.Contains(html, `style="color: red"`) {
		t.Errorf("missing style: %s", html)
	}
	if !strings.Contains(html, "a &lt; b") {
		t.Errorf("text not escaped: %s", html)
	}
	if !strings.Contains(html, `data-rid="`) {
		t.Errorf("missing data-rid: %s", html)
	}
	if strings.Contains(html, "</br>") {
		t.Errorf("void element got a closing tag: %s", html)
	}
	if !strings.Contains(html, "</div>") {
		t.Errorf("missing closing tag: %s", html)
	}
}

func TestNodeByID(t *testing.T) {
	doc := NewDocument()

	el := doc.CreateElement("div")
	doc.InsertBefore(doc.Root(), el, nil)

	id := el.(*Node).ID()
	if doc.NodeByID(id) != el.(*Node) {
		t.Error("NodeByID did not return the node")
	}

	doc.RemoveChild(doc.Root(), el)
	doc.Destroy(el)
	if doc.NodeByID(id) != nil {
		t.Error("NodeByID returned a destroyed node")
	}
}
