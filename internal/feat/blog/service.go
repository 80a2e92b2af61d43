package blog

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/metrics"
)

const defaultContentDir = "assets/content/blog"

// Service defines the blog service interface.
type Service interface {
	Start(ctx context.Context) error
	Catalog() *Catalog
	Search(query string) Result
	NewSession() *Session
}

type service struct {
	contentFS  fs.FS
	contentDir string
	catalog    *Catalog
	log        logger.Logger
}

// NewService creates a blog service reading posts from
// assets/content/blog in contentFS.
func NewService(contentFS fs.FS, log logger.Logger) Service {
	return &service{
		contentFS:  contentFS,
		contentDir: defaultContentDir,
		log:        log,
	}
}

// Start loads the catalog once.
func (s *service) Start(ctx context.Context) error {
	catalog, err := LoadCatalog(s.contentFS, s.contentDir)
	if err != nil {
		return fmt.Errorf("cannot load blog catalog: %w", err)
	}
	s.catalog = catalog
	s.log.Infof("Blog service started with %d posts", catalog.Len())
	return nil
}

func (s *service) Catalog() *Catalog {
	if s.catalog == nil {
		return &Catalog{}
	}
	return s.catalog
}

func (s *service) Search(query string) Result {
	res := Filter(s.Catalog().posts, query)
	recordSearch(res)
	return res
}

// NewSession opens an interactive search session over the catalog.
func (s *service) NewSession() *Session {
	sess := NewSession(s.Catalog())
	sess.Subscribe(recordSearch)
	return sess
}

func recordSearch(res Result) {
	switch {
	case strings.TrimSpace(res.Query) == "":
		metrics.BlogSearches.WithLabelValues("all").Inc()
	case res.IsEmpty():
		metrics.BlogSearches.WithLabelValues("miss").Inc()
	default:
		metrics.BlogSearches.WithLabelValues("hit").Inc()
	}
}
