package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	ActivePath  string
	// RefreshAfter, when set, adds a meta refresh to RefreshURL.
	RefreshAfter string
	RefreshURL   string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "KozmoAI - Visual AI Workflow Builder"
	} else {
		config.Title = config.Title + " | KozmoAI"
	}

	if config.Description == "" {
		config.Description = "Build, test and ship AI agents and RAG pipelines with a visual workflow builder."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			g.Attr("data-theme", "dark"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				g.If(config.RefreshAfter != "",
					Meta(g.Attr("http-equiv", "refresh"), Content(config.RefreshAfter+";url="+config.RefreshURL)),
				),
				Link(Rel("icon"), Href("/static/images/favicon.svg")),
				Link(Rel("stylesheet"), Href("/static/css/site.css")),
			),
			Body(
				Class("site"),
				SiteHeader(config.ActivePath),
				Main(Class("site-main"), g.Group(content)),
				SiteFooter(),
			),
		),
	})
}
