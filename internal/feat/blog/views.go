package blog

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/kozmoai/site/internal/web/components"
)

func blogPage(res Result) g.Node {
	return components.Layout(
		components.PageConfig{
			Title:       "Blog",
			Description: "Tutorials, release notes and ideas from the KozmoAI team.",
			ActivePath:  "/blog",
		},
		h.Section(
			h.Class("container blog"),
			components.SectionTitle("", "KozmoAI Blog", "Insights, tutorials and updates on building AI workflows."),
			searchForm(res.Query),
			h.Div(
				h.ID("blog-results"),
				blogResults(res),
			),
		),
		h.Script(h.Src("/static/js/blog-search.js"), h.Defer()),
	)
}

func searchForm(query string) g.Node {
	return h.Form(
		h.Class("blog-search"),
		h.Method("get"),
		h.Action("/blog"),
		g.Attr("role", "search"),
		h.Input(
			h.Type("search"),
			h.Name("q"),
			h.ID("blog-search-input"),
			h.Placeholder("Search articles..."),
			h.Value(query),
			h.AutoComplete("off"),
			g.Attr("aria-label", "Search articles"),
		),
		g.If(query != "",
			h.A(h.Href("/blog"), h.Class("blog-search-clear"), g.Attr("aria-label", "Clear search"), g.Text("Clear")),
		),
	)
}

func blogResults(res Result) g.Node {
	if res.IsEmpty() {
		return h.Div(
			h.Class("blog-empty"),
			h.H3(g.Text("No posts found")),
			h.P(g.Textf("Nothing matches %q. Try a different search term.", res.Query)),
			h.A(h.Href("/blog"), h.Class("btn"), g.Text("Clear search")),
		)
	}

	return g.Group([]g.Node{
		g.Iff(res.Featured != nil, func() g.Node { return featuredCard(*res.Featured) }),
		g.If(len(res.Remaining) > 0,
			h.Div(
				h.Class("blog-grid"),
				g.Map(res.Remaining, postCard),
			),
		),
	})
}

func featuredCard(p Post) g.Node {
	return h.Article(
		h.Class("blog-featured"),
		g.Attr("data-title", p.Title),
		h.Img(h.Src(p.Image), h.Alt(p.Title), g.Attr("loading", "lazy")),
		h.Div(
			h.Class("blog-featured-body"),
			h.Span(h.Class("badge"), g.Text("Featured")),
			h.H2(g.Text(p.Title)),
			postMeta(p),
			h.Div(h.Class("excerpt"), g.Raw(string(p.ExcerptHTML))),
			postLink(p, "Read Article"),
		),
	)
}

func postCard(p Post) g.Node {
	return h.Article(
		h.Class("blog-card"),
		g.Attr("data-title", p.Title),
		h.Img(h.Src(p.Image), h.Alt(p.Title), g.Attr("loading", "lazy")),
		h.H3(g.Text(p.Title)),
		postMeta(p),
		h.Div(h.Class("excerpt"), g.Raw(string(p.ExcerptHTML))),
		postLink(p, "Read more"),
	)
}

func postMeta(p Post) g.Node {
	return h.P(
		h.Class("post-meta"),
		h.Span(g.Text(p.Date)),
		g.Text(" · "),
		h.Span(g.Text(p.ReadTime)),
	)
}

func postLink(p Post, label string) g.Node {
	if !p.IsExternal() {
		return h.Span(h.Class("post-link disabled"), g.Text("Coming soon"))
	}
	return h.A(
		h.Href(p.URL),
		h.Class("post-link"),
		h.Target("_blank"),
		h.Rel("noopener noreferrer"),
		g.Text(label),
	)
}
