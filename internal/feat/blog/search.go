package blog

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Filter partitions posts for a query. A blank query features the first post
// and keeps the rest in order. Otherwise posts whose title or excerpt contain
// the query (case-insensitively) are kept in catalog order and the first of
// them is featured. Only blankness is judged on the trimmed query; matching
// uses the query as typed.
func Filter(posts []Post, query string) Result {
	res := Result{Query: query, Remaining: []Post{}}

	if strings.TrimSpace(query) == "" {
		if len(posts) == 0 {
			return res
		}
		featured := posts[0]
		res.Featured = &featured
		res.Remaining = append(res.Remaining, posts[1:]...)
		return res
	}

	fold := cases.Fold()
	needle := fold.String(query)

	for _, p := range posts {
		if !strings.Contains(fold.String(p.Title), needle) &&
			!strings.Contains(fold.String(p.Excerpt), needle) {
			continue
		}
		if res.Featured == nil {
			featured := p
			res.Featured = &featured
			continue
		}
		res.Remaining = append(res.Remaining, p)
	}
	return res
}

// Session holds the interactive search state for one listing: the current
// query and its derived result, recomputed on every change. Observers are
// notified after each recomputation.
type Session struct {
	mu        sync.Mutex
	posts     []Post
	query     string
	result    Result
	observers map[int]func(Result)
	nextID    int
}

// NewSession starts a session over the catalog with an empty query.
func NewSession(c *Catalog) *Session {
	posts := c.Posts()
	return &Session{
		posts:     posts,
		result:    Filter(posts, ""),
		observers: make(map[int]func(Result)),
	}
}

// SetQuery replaces the query and recomputes the result.
func (s *Session) SetQuery(query string) Result {
	s.mu.Lock()
	s.query = query
	s.result = Filter(s.posts, query)
	res := s.result
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, fn := range observers {
		fn(res)
	}
	return res
}

// Clear resets the query to empty.
func (s *Session) Clear() Result {
	return s.SetQuery("")
}

// Query returns the current query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Result returns the result for the current query.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Subscribe registers fn to receive every recomputed result. The returned
// function removes it.
func (s *Session) Subscribe(fn func(Result)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Session) snapshotObservers() []func(Result) {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	// Notify in subscription order.
	slices.Sort(ids)
	out := make([]func(Result), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.observers[id])
	}
	return out
}
