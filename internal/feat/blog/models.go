package blog

import (
	"html/template"
)

// Post is a single entry in the blog catalog.
type Post struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	Excerpt     string        `json:"excerpt"`
	ExcerptHTML template.HTML `json:"-"`
	Image       string        `json:"image"`
	URL         string        `json:"url"`
	ReadTime    string        `json:"readTime"`
}

// IsExternal reports whether the post links somewhere real.
func (p Post) IsExternal() bool {
	return p.URL != "" && p.URL != "#"
}

// Result is the partition of the catalog for one query.
type Result struct {
	Query     string `json:"query"`
	Featured  *Post  `json:"featured"`
	Remaining []Post `json:"posts"`
}

// IsEmpty reports whether nothing matched.
func (r Result) IsEmpty() bool {
	return r.Featured == nil && len(r.Remaining) == 0
}

// Count returns the number of posts in the result.
func (r Result) Count() int {
	if r.Featured == nil {
		return len(r.Remaining)
	}
	return len(r.Remaining) + 1
}

// frontMatter is the YAML header of a catalog markdown file.
type frontMatter struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Image    string `yaml:"image"`
	URL      string `yaml:"url"`
	ReadTime string `yaml:"read_time"`
	Order    int    `yaml:"order"`
}
