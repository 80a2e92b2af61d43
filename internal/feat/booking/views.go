package booking

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/kozmoai/site/internal/web/components"
)

const loadErrorMessage = "Failed to load the booking calendar. Please try again later."

func bookDemoPage(embedURL string) g.Node {
	return components.Layout(
		components.PageConfig{
			Title:       "Book a Demo",
			Description: "Pick a time for a walkthrough of KozmoAI with our team.",
			ActivePath:  "/book-demo",
		},
		h.Section(
			h.Class("container book-demo"),
			components.SectionTitle("", "Book a Demo with Our Team", ""),
			h.Div(
				h.ID("cal-loading"),
				components.Spinner("Loading calendar..."),
			),
			h.Div(
				h.ID("cal-error"),
				g.Attr("hidden"),
				components.Alert("error", "Error", loadErrorMessage,
					h.A(h.Href("/"), h.Class("btn btn-ghost"), g.Text("Close")),
				),
			),
			h.Div(
				h.Class("cal-embed"),
				h.IFrame(
					h.ID("cal-embed"),
					h.Class("cal-embed-iframe"),
					h.Src(embedURL),
					h.Width("100%"),
					h.Height("700"),
					g.Attr("frameborder", "0"),
					g.Attr("title", "Book a demo calendar"),
					g.Attr("allow", "camera; microphone; autoplay; fullscreen"),
				),
			),
		),
		h.Script(h.Src("/static/js/book-demo.js"), h.Defer()),
	)
}

func unavailablePage() g.Node {
	return components.Layout(
		components.PageConfig{
			Title:      "Book a Demo",
			ActivePath: "/book-demo",
		},
		h.Section(
			h.Class("container narrow"),
			components.Alert("error", "Booking unavailable",
				"Online booking is not available right now. Leave your details and we will reach out.",
				h.A(h.Href("/get-started"), h.Class("btn btn-primary"), g.Text("Get Started")),
			),
		),
	)
}
