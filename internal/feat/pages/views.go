package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/kozmoai/site/internal/web/components"
)

func homePage(l Landing, useCases []UseCase) g.Node {
	return components.Layout(
		components.PageConfig{ActivePath: "/"},
		h.Section(
			h.Class("hero container"),
			h.H1(g.Text(l.Hero.Title)),
			h.P(h.Class("lead"), g.Text(l.Hero.Lead)),
			h.P(h.Class("tagline"), g.Text(l.Hero.Tagline)),
			ctaButtons(),
		),
		h.Section(
			h.ID("features"),
			h.Class("container"),
			components.SectionTitle("", "What you can build", ""),
			itemGrid(l.Features),
		),
		h.Section(
			h.ID("how-it-works"),
			h.Class("container"),
			components.SectionTitle("", l.Steps.Title, l.Steps.Lead),
			h.Ol(
				h.Class("steps"),
				g.Map(l.Steps.Items, func(it Item) g.Node {
					return h.Li(h.H3(g.Text(it.Title)), h.P(g.Text(it.Description)))
				}),
			),
		),
		h.Section(
			h.ID("use-cases"),
			h.Class("container"),
			components.SectionTitle("", "Use Cases", "See how teams put KozmoAI to work."),
			h.Div(
				h.Class("card-grid"),
				g.Map(useCases, func(uc UseCase) g.Node {
					return h.A(
						h.Class("card"),
						h.Href("/use-cases/"+uc.Slug),
						h.H3(g.Text(uc.Title)),
						h.P(g.Text(uc.Summary)),
					)
				}),
			),
		),
		h.Section(
			h.ID("faq"),
			h.Class("container narrow"),
			components.SectionTitle("", l.FAQ.Title, l.FAQ.Lead),
			g.Map(l.FAQ.Items, func(f FAQItem) g.Node {
				return h.Details(
					h.Class("faq-item"),
					h.Summary(g.Text(f.Question)),
					h.P(g.Text(f.Answer)),
				)
			}),
		),
		ctaSection(l.CTA),
	)
}

func useCasePage(uc UseCase, all []UseCase) g.Node {
	return components.Layout(
		components.PageConfig{
			Title:       uc.Title,
			Description: uc.Summary,
			ActivePath:  "/use-cases/" + uc.Slug,
		},
		h.Section(
			h.Class("hero container"),
			h.H1(g.Text(uc.Title)),
			h.P(h.Class("lead"), g.Text(uc.Summary)),
			ctaButtons(),
		),
		h.Section(
			h.Class("container"),
			components.SectionTitle("", "Key Features", ""),
			itemGrid(uc.Features),
		),
		h.Section(
			h.Class("container"),
			components.SectionTitle("", "Popular Use Cases", ""),
			itemGrid(uc.Applications),
		),
		ctaSection(uc.CTA),
		h.Nav(
			h.Class("container use-case-nav"),
			g.Attr("aria-label", "Other use cases"),
			h.Ul(g.Map(all, func(other UseCase) g.Node {
				return h.Li(h.A(
					h.Href("/use-cases/"+other.Slug),
					g.If(other.Slug == uc.Slug, h.Class("active")),
					g.Text(other.Title),
				))
			})),
		),
	)
}

func notFoundPage() g.Node {
	return components.Layout(
		components.PageConfig{Title: "Page not found"},
		h.Section(
			h.Class("container narrow"),
			h.H1(g.Text("Page not found")),
			h.P(g.Text("The page you are looking for does not exist.")),
			h.A(h.Href("/"), h.Class("btn btn-primary"), g.Text("Back to home")),
		),
	)
}

func itemGrid(items []Item) g.Node {
	return h.Div(
		h.Class("card-grid"),
		g.Map(items, func(it Item) g.Node {
			return h.Div(h.Class("card"), h.H3(g.Text(it.Title)), h.P(g.Text(it.Description)))
		}),
	)
}

func ctaButtons() g.Node {
	return h.Div(
		h.Class("cta-buttons"),
		h.A(h.Href("/get-started"), h.Class("btn btn-primary"), g.Text("Get Started")),
		h.A(h.Href("/book-demo"), h.Class("btn btn-ghost"), g.Text("Book a Demo")),
	)
}

func ctaSection(cta CTA) g.Node {
	return h.Section(
		h.Class("cta container"),
		h.H2(g.Text(cta.Title)),
		h.P(g.Text(cta.Text)),
		ctaButtons(),
	)
}
