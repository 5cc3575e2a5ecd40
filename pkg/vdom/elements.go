package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element node with the given tag. Arguments can be:
// nil (ignored, allows conditional attributes), Attr, []Attr,
// EventHandler, *VNode, []*VNode, or string (coerced to a text child).
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			node.applyAttr(v)

		case []Attr:
			for _, a := range v {
				node.applyAttr(a)
			}

		case EventHandler:
			if v.Event != "" && v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}

		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// applyAttr records a single attribute on the node. The "key" attribute is
// lifted into the Key field used by keyed reconciliation.
func (v *VNode) applyAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	v.Props[a.Key] = a.Value
}

// Document structure

// Div creates a <div> element.
func Div(args ...any) *VNode { return El("div", args...) }

// Span creates a <span> element.
func Span(args ...any) *VNode { return El("span", args...) }

// P creates a <p> element.
func P(args ...any) *VNode { return El("p", args...) }

// Section creates a <section> element.
func Section(args ...any) *VNode { return El("section", args...) }

// Header creates a <header> element.
func Header(args ...any) *VNode { return El("header", args...) }

// Footer creates a <footer> element.
func Footer(args ...any) *VNode { return El("footer", args...) }

// Main creates a <main> element.
func Main(args ...any) *VNode { return El("main", args...) }

// Nav creates a <nav> element.
func Nav(args ...any) *VNode { return El("nav", args...) }

// Headings

// H1 creates an <h1> element.
func H1(args ...any) *VNode { return El("h1", args...) }

// H2 creates an <h2> element.
func H2(args ...any) *VNode { return El("h2", args...) }

// H3 creates an <h3> element.
func H3(args ...any) *VNode { return El("h3", args...) }

// Lists

// Ul creates a <ul> element.
func Ul(args ...any) *VNode { return El("ul", args...) }

// Ol creates an <ol> element.
func Ol(args ...any) *VNode { return El("ol", args...) }

// Li creates a <li> element.
func Li(args ...any) *VNode { return El("li", args...) }

// Inline

// A creates an <a> element.
func A(args ...any) *VNode { return El("a", args...) }

// Strong creates a <strong> element.
func Strong(args ...any) *VNode { return El("strong", args...) }

// Em creates an <em> element.
func Em(args ...any) *VNode { return El("em", args...) }

// Small creates a <small> element.
func Small(args ...any) *VNode { return El("small", args...) }

// Code creates a <code> element.
func Code(args ...any) *VNode { return El("code", args...) }

// Pre creates a <pre> element.
func Pre(args ...any) *VNode { return El("pre", args...) }

// Forms

// Button creates a <button> element.
func Button(args ...any) *VNode { return El("button", args...) }

// Input creates an <input> element.
func Input(args ...any) *VNode { return El("input", args...) }

// Label creates a <label> element.
func Label(args ...any) *VNode { return El("label", args...) }

// Form creates a <form> element.
func Form(args ...any) *VNode { return El("form", args...) }

// Select creates a <select> element.
func Select(args ...any) *VNode { return El("select", args...) }

// Option creates an <option> element.
func Option(args ...any) *VNode { return El("option", args...) }

// Media and void elements

// Img creates an <img> element.
func Img(args ...any) *VNode { return El("img", args...) }

// Br creates a <br> element.
func Br(args ...any) *VNode { return El("br", args...) }

// Hr creates an <hr> element.
func Hr(args ...any) *VNode { return El("hr", args...) }
