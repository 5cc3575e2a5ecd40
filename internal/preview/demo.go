package preview

import (
	"fmt"
	"strings"

	"github.com/reflow-ui/reflow/pkg/reactive"
	"github.com/reflow-ui/reflow/pkg/vdom"
)

// DemoView builds one static snapshot of the demo tree, used by the
// export command.
func DemoView() *vdom.VNode {
	return newDemo().view()
}

// todo is one entry in the demo list.
type todo struct {
	id    int
	title string
	done  bool
}

// demo is the application mounted by the preview server: a counter plus a
// keyed todo list. It exists to exercise signals, derived values, batched
// updates, and keyed reconciliation against a live host.
type demo struct {
	count     *reactive.Signal[int]
	doubled   *reactive.Derived[int]
	todos     *reactive.Signal[[]todo]
	remaining *reactive.Derived[int]
	draft     *reactive.Signal[string]
	nextID    int
}

func newDemo() *demo {
	d := &demo{
		count:  reactive.NewSignal(0),
		todos:  reactive.NewSignal([]todo{}),
		draft:  reactive.NewSignal(""),
		nextID: 1,
	}
	d.doubled = reactive.NewDerived(func() int {
		return d.count.Get() * 2
	})
	d.remaining = reactive.NewDerived(func() int {
		n := 0
		for _, t := range d.todos.Get() {
			if !t.done {
				n++
			}
		}
		return n
	})
	return d
}

func (d *demo) addTodo() {
	title := strings.TrimSpace(d.draft.Peek())
	if title == "" {
		return
	}
	reactive.Batch(func() {
		d.todos.Update(func(items []todo) []todo {
			next := make([]todo, len(items), len(items)+1)
			copy(next, items)
			return append(next, todo{id: d.nextID, title: title})
		})
		d.draft.Set("")
	})
	d.nextID++
}

func (d *demo) toggleTodo(id int) {
	d.todos.Update(func(items []todo) []todo {
		next := make([]todo, len(items))
		copy(next, items)
		for i := range next {
			if next[i].id == id {
				next[i].done = !next[i].done
			}
		}
		return next
	})
}

func (d *demo) removeTodo(id int) {
	d.todos.Update(func(items []todo) []todo {
		next := make([]todo, 0, len(items))
		for _, t := range items {
			if t.id != id {
				next = append(next, t)
			}
		}
		return next
	})
}

// view builds the demo tree. Every signal read here subscribes the render
// effect, so any mutation above triggers a reconcile.
func (d *demo) view() *vdom.VNode {
	return vdom.Div(vdom.Class("app"),
		vdom.Section(vdom.Class("counter"),
			vdom.H1(vdom.Text("Counter")),
			vdom.P(vdom.Textf("count: %d, doubled: %d", d.count.Get(), d.doubled.Get())),
			vdom.Button(
				vdom.Text("+1"),
				vdom.OnClick(func() { d.count.Update(func(n int) int { return n + 1 }) }),
			),
			vdom.Button(
				vdom.Text("-1"),
				vdom.OnClick(func() { d.count.Update(func(n int) int { return n - 1 }) }),
			),
		),
		vdom.Section(vdom.Class("todos"),
			vdom.H1(vdom.Text("Todos")),
			vdom.Input(
				vdom.Type("text"),
				vdom.Placeholder("What needs doing?"),
				vdom.Value(d.draft.Get()),
				vdom.OnInput(func(ev vdom.Event) { d.draft.Set(ev.Value) }),
			),
			vdom.Button(vdom.Text("Add"), vdom.OnClick(d.addTodo)),
			vdom.Ul(
				vdom.Each(d.todos.Get(),
					func(t todo) string { return fmt.Sprintf("todo-%d", t.id) },
					func(t todo) *vdom.VNode {
						return d.todoItem(t)
					},
				),
			),
			vdom.P(vdom.Class("summary"),
				vdom.Textf("%d remaining", d.remaining.Get()),
			),
		),
	)
}

func (d *demo) todoItem(t todo) *vdom.VNode {
	id := t.id
	cls := "todo"
	if t.done {
		cls = "todo done"
	}
	return vdom.Li(vdom.Class(cls),
		vdom.Input(
			vdom.Type("checkbox"),
			vdom.Checked(t.done),
			vdom.OnChange(func() { d.toggleTodo(id) }),
		),
		vdom.Span(vdom.Text(t.title)),
		vdom.Button(
			vdom.Text("x"),
			vdom.OnClick(func() { d.removeTodo(id) }),
		),
	)
}
