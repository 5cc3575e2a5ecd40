package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Key sets the reconciliation key establishing stable identity among
// siblings. It is not a real attribute and never reaches the host.
func Key(key string) Attr { return attr("key", key) }

// Style sets the style map. Entries are applied and removed individually
// during reconciliation.
func Style(styles map[string]string) Attr { return attr("style", styles) }

// Data creates a data-* attribute.
// Example: Data("id", "123") -> data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Custom creates an attribute with an arbitrary key.
func Custom(key string, value any) Attr { return attr(key, value) }

// Link and media attributes

// Href sets the href attribute.
func Href(href string) Attr { return attr("href", href) }

// Src sets the src attribute.
func Src(src string) Attr { return attr("src", src) }

// Alt sets the alt attribute.
func Alt(alt string) Attr { return attr("alt", alt) }

// Title sets the title attribute.
func Title(title string) Attr { return attr("title", title) }

// Form attributes

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// For sets the for attribute.
func For(id string) Attr { return attr("for", id) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Raw properties: applied to the live node itself, not serialized as
// attributes.

// Value sets the value property.
func Value(value string) Attr { return attr("value", value) }

// Checked sets the checked property.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Selected sets the selected property.
func Selected(selected bool) Attr { return attr("selected", selected) }

// Disabled sets the disabled property.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }
