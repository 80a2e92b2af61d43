package pages

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kozmoai/site/pkg/kz/logger"
)

const (
	landingFile = "assets/content/landing.yaml"
	useCasesDir = "assets/content/usecases"
)

// Service defines the pages service interface.
type Service interface {
	Start(ctx context.Context) error
	Landing() Landing
	UseCases() []UseCase
	UseCase(slug string) (UseCase, bool)
}

type service struct {
	contentFS fs.FS
	landing   Landing
	useCases  []UseCase
	bySlug    map[string]int
	log       logger.Logger
}

// NewService creates a pages service reading YAML content from contentFS.
func NewService(contentFS fs.FS, log logger.Logger) Service {
	return &service{
		contentFS: contentFS,
		bySlug:    make(map[string]int),
		log:       log,
	}
}

func (s *service) Start(ctx context.Context) error {
	raw, err := fs.ReadFile(s.contentFS, landingFile)
	if err != nil {
		return fmt.Errorf("cannot read landing content: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.landing); err != nil {
		return fmt.Errorf("cannot parse landing content: %w", err)
	}

	useCases, err := loadUseCases(s.contentFS, useCasesDir)
	if err != nil {
		return err
	}
	s.useCases = useCases
	for i, uc := range useCases {
		s.bySlug[uc.Slug] = i
	}

	s.log.Infof("Pages service started with %d use cases", len(useCases))
	return nil
}

func (s *service) Landing() Landing {
	return s.landing
}

func (s *service) UseCases() []UseCase {
	out := make([]UseCase, len(s.useCases))
	copy(out, s.useCases)
	return out
}

func (s *service) UseCase(slug string) (UseCase, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return UseCase{}, false
	}
	return s.useCases[i], true
}

func loadUseCases(fsys fs.FS, dir string) ([]UseCase, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read use cases directory: %w", err)
	}

	var out []UseCase
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read use case %s: %w", entry.Name(), err)
		}

		var uc UseCase
		if err := yaml.Unmarshal(raw, &uc); err != nil {
			return nil, fmt.Errorf("cannot parse use case %s: %w", entry.Name(), err)
		}
		if uc.Title == "" {
			return nil, fmt.Errorf("use case %s has no title", entry.Name())
		}
		uc.Slug = strings.TrimSuffix(entry.Name(), ".yaml")
		out = append(out, uc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out, nil
}
