package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type NavLink struct {
	Label string
	Href  string
}

var navLinks = []NavLink{
	{"Features", "/#features"},
	{"Use Cases", "/use-cases/knowledge-management"},
	{"Blog", "/blog"},
	{"Book a Demo", "/book-demo"},
}

func SiteHeader(activePath string) g.Node {
	return Header(
		Class("topbar"),
		Nav(
			Class("topbar-inner container"),
			A(Href("/"), Class("logo"), g.Text("KozmoAI")),
			Ul(
				Class("topbar-links"),
				g.Map(navLinks, func(l NavLink) g.Node {
					return Li(A(
						Href(l.Href),
						g.If(l.Href == activePath, Class("active")),
						g.Text(l.Label),
					))
				}),
			),
			A(Href("/get-started"), Class("btn btn-primary"), g.Text("Get Started")),
		),
	)
}

func SiteFooter() g.Node {
	return Footer(
		Class("footer container"),
		P(g.Text("© KozmoAI. Build AI workflows visually.")),
		Ul(
			Class("footer-links"),
			Li(A(Href("/blog"), g.Text("Blog"))),
			Li(A(Href("/book-demo"), g.Text("Book a Demo"))),
			Li(A(Href("/get-started"), g.Text("Get Started"))),
		),
	)
}
