package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Alert renders a dismissible-looking status box. Kind is "error" or "success".
func Alert(kind, title, message string, extra ...g.Node) g.Node {
	return Div(
		Class("alert alert-"+kind),
		g.Attr("role", "alert"),
		Strong(g.Text(title)),
		P(g.Text(message)),
		g.Group(extra),
	)
}

// Spinner is the loading indicator shown while embeds load.
func Spinner(label string) g.Node {
	return Div(
		Class("spinner"),
		Span(Class("spinner-icon"), g.Attr("aria-hidden", "true")),
		P(g.Text(label)),
	)
}

// SectionTitle renders a centered heading with a lead paragraph.
func SectionTitle(id, title, lead string) g.Node {
	return Div(
		Class("section-title"),
		H2(g.If(id != "", ID(id)), g.Text(title)),
		g.If(lead != "", P(Class("lead"), g.Text(lead))),
	)
}
