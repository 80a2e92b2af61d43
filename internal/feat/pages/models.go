package pages

// Item is a titled blurb used by feature grids, steps and applications.
type Item struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type CTA struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Landing is the content of the home page.
type Landing struct {
	Hero struct {
		Title   string `yaml:"title"`
		Lead    string `yaml:"lead"`
		Tagline string `yaml:"tagline"`
	} `yaml:"hero"`
	Features []Item `yaml:"features"`
	Steps    struct {
		Title string `yaml:"title"`
		Lead  string `yaml:"lead"`
		Items []Item `yaml:"items"`
	} `yaml:"steps"`
	FAQ struct {
		Title string    `yaml:"title"`
		Lead  string    `yaml:"lead"`
		Items []FAQItem `yaml:"items"`
	} `yaml:"faq"`
	CTA CTA `yaml:"cta"`
}

// UseCase is one industry page under /use-cases/{slug}.
type UseCase struct {
	Slug         string `yaml:"-"`
	Title        string `yaml:"title"`
	Order        int    `yaml:"order"`
	Summary      string `yaml:"summary"`
	Features     []Item `yaml:"features"`
	Applications []Item `yaml:"applications"`
	CTA          CTA    `yaml:"cta"`
}
