package memdom

import (
	"sort"
	"strconv"
	"strings"

	"github.com/reflow-ui/reflow/pkg/render"
	"github.com/reflow-ui/reflow/pkg/vdom"
)

// HTML returns an HTML snapshot of the realized tree. Every element
// carries a data-rid attribute with its node id so preview clients can
// address it when dispatching events. Attributes, style entries, and raw
// properties serialize in sorted order.
func (d *Document) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf strings.Builder
	for _, c := range d.root.children {
		writeNode(&buf, c)
	}
	return buf.String()
}

func writeNode(buf *strings.Builder, n *Node) {
	if n.IsText() {
		buf.WriteString(render.EscapeHTML(n.text))
		return
	}

	buf.WriteString("<" + n.tag)
	buf.WriteString(` data-rid="`)
	buf.WriteString(strconv.Itoa(n.id))
	buf.WriteString(`"`)

	for _, key := range sortedKeys(n.attrs) {
		buf.WriteString(" " + key + `="` + render.EscapeAttr(n.attrs[key]) + `"`)
	}

	if len(n.styles) > 0 {
		props := make([]string, 0, len(n.styles))
		for prop := range n.styles {
			props = append(props, prop)
		}
		sort.Strings(props)

		buf.WriteString(` style="`)
		for i, prop := range props {
			if i > 0 {
				buf.WriteString("; ")
			}
			buf.WriteString(render.EscapeAttr(prop + ": " + n.styles[prop]))
		}
		buf.WriteString(`"`)
	}

	propKeys := make([]string, 0, len(n.props))
	for key := range n.props {
		propKeys = append(propKeys, key)
	}
	sort.Strings(propKeys)
	for _, key := range propKeys {
		switch v := n.props[key].(type) {
		case bool:
			if v {
				buf.WriteString(" " + key)
			}
		case string:
			buf.WriteString(" " + key + `="` + render.EscapeAttr(v) + `"`)
		}
	}

	buf.WriteString(">")
	if vdom.IsVoidElement(n.tag) {
		return
	}

	for _, c := range n.children {
		writeNode(buf, c)
	}
	buf.WriteString("</" + n.tag + ">")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
