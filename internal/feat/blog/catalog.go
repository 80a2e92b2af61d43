package blog

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var (
	errNoFrontMatter = errors.New("no front matter found")
	errEmptyTitle    = errors.New("post title is empty")
)

// Catalog is the ordered, read-only set of blog posts. It is built once and
// never mutated; accessors hand out copies.
type Catalog struct {
	posts []Post
}

// NewCatalog builds a catalog from posts in the given order. Titles must be
// non-empty and unique.
func NewCatalog(posts []Post) (*Catalog, error) {
	seen := make(map[string]bool, len(posts))
	for i, p := range posts {
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("post #%d: %w", i, errEmptyTitle)
		}
		if seen[p.Title] {
			return nil, fmt.Errorf("duplicate post title %q", p.Title)
		}
		seen[p.Title] = true
	}

	c := &Catalog{posts: make([]Post, len(posts))}
	copy(c.posts, posts)
	return c, nil
}

// Posts returns a copy of the posts in catalog order.
func (c *Catalog) Posts() []Post {
	out := make([]Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Len returns the number of posts.
func (c *Catalog) Len() int {
	return len(c.posts)
}

// LoadCatalog reads every *.md file under dir. Each file has a YAML front
// matter block followed by the excerpt in markdown. Posts are ordered by the
// front matter "order" field, then by file name.
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read blog directory %s: %w", dir, err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	type ordered struct {
		order int
		name  string
		post  Post
	}
	var items []ordered

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read post %s: %w", entry.Name(), err)
		}

		fm, body, err := parseFrontMatter(raw)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", entry.Name(), err)
		}

		excerptHTML, excerpt, err := renderExcerpt(md, body)
		if err != nil {
			return nil, fmt.Errorf("post %s: cannot render excerpt: %w", entry.Name(), err)
		}

		items = append(items, ordered{
			order: fm.Order,
			name:  entry.Name(),
			post: Post{
				Slug:        strings.TrimSuffix(entry.Name(), ".md"),
				Title:       strings.TrimSpace(fm.Title),
				Date:        fm.Date,
				Excerpt:     excerpt,
				ExcerptHTML: excerptHTML,
				Image:       fm.Image,
				URL:         fm.URL,
				ReadTime:    fm.ReadTime,
			},
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].order != items[j].order {
			return items[i].order < items[j].order
		}
		return items[i].name < items[j].name
	})

	posts := make([]Post, 0, len(items))
	for _, it := range items {
		posts = append(posts, it.post)
	}
	return NewCatalog(posts)
}

func parseFrontMatter(raw []byte) (frontMatter, []byte, error) {
	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.TrimLeft(norm, "\n")

	const sep = "---\n"
	if !bytes.HasPrefix(norm, []byte(sep)) {
		return frontMatter{}, nil, errNoFrontMatter
	}
	rest := norm[len(sep):]

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return frontMatter{}, nil, errNoFrontMatter
	}

	var fm frontMatter
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return frontMatter{}, nil, fmt.Errorf("invalid front matter: %w", err)
	}

	body := rest[end+len("\n---"):]
	body = bytes.TrimLeft(body, "-")
	return fm, bytes.TrimSpace(body), nil
}

// renderExcerpt returns the excerpt as HTML for display and as plain text
// for searching, so markup never matches a query.
func renderExcerpt(md goldmark.Markdown, src []byte) (template.HTML, string, error) {
	doc := md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, src, doc); err != nil {
		return "", "", err
	}

	var plain strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Kind() == ast.KindParagraph && n.NextSibling() != nil {
				plain.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			plain.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				plain.WriteByte(' ')
			}
		case *ast.String:
			plain.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", "", err
	}

	return template.HTML(strings.TrimSpace(buf.String())), strings.TrimSpace(plain.String()), nil
}
