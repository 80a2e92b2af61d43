package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kozmoai/site/pkg/kz/config"
	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/metrics"
	"github.com/kozmoai/site/pkg/kz/model"
)

const (
	defaultSubmitTimeout = 12 * time.Second
	defaultListLimit     = 50
	maxListLimit         = 500
)

// Service defines the demo request service interface.
type Service interface {
	Start(ctx context.Context) error
	CreateDemoRequest(ctx context.Context, req *DemoRequest) error
	ListDemoRequests(ctx context.Context, limit int) ([]*DemoRequest, error)
}

// DBProvider provides access to the database.
type DBProvider interface {
	GetDB() *sql.DB
	Driver() string
}

type service struct {
	dbProvider DBProvider
	store      Store
	timeout    time.Duration
	now        model.Clock
	log        logger.Logger
}

// NewService creates a demo request service backed by the SQL store of
// dbProvider, built on Start.
func NewService(dbProvider DBProvider, cfg *config.Config, log logger.Logger) Service {
	return &service{
		dbProvider: dbProvider,
		timeout:    cfg.Leads.SubmitTimeout,
		log:        log,
	}
}

// NewServiceWithStore creates a service over an explicit store.
func NewServiceWithStore(store Store, timeout time.Duration, now model.Clock, log logger.Logger) Service {
	return &service{
		store:   store,
		timeout: timeout,
		now:     now,
		log:     log,
	}
}

func (s *service) ensureStore() {
	if s.store == nil && s.dbProvider != nil {
		s.store = NewSQLStore(s.dbProvider.GetDB(), s.dbProvider.Driver())
	}
}

func (s *service) Start(ctx context.Context) error {
	s.ensureStore()
	if s.store == nil {
		return errors.New("cannot start leads service: no store")
	}
	s.log.Infof("Leads service started (submit timeout %s)", s.submitTimeout())
	return nil
}

func (s *service) submitTimeout() time.Duration {
	if s.timeout <= 0 {
		return defaultSubmitTimeout
	}
	return s.timeout
}

// CreateDemoRequest assigns the ID and creation time and stores req. The
// call always returns within the submit timeout, even when the store
// ignores its context. Failures are *PersistenceError.
func (s *service) CreateDemoRequest(ctx context.Context, req *DemoRequest) error {
	s.ensureStore()

	if req.ID == uuid.Nil {
		req.ID = model.NewID()
	}
	req.CreatedAt = s.now.Or()()

	ctx, cancel := context.WithTimeout(ctx, s.submitTimeout())
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- s.store.Insert(ctx, req)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	metrics.DemoRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		timeout := errors.Is(err, context.DeadlineExceeded)
		if timeout {
			metrics.DemoRequests.WithLabelValues("timeout").Inc()
		} else {
			metrics.DemoRequests.WithLabelValues("failed").Inc()
		}
		s.log.Errorf("Cannot store demo request %s: %v", req.ID, err)
		return &PersistenceError{Timeout: timeout, Err: err}
	}

	metrics.DemoRequests.WithLabelValues("success").Inc()
	s.log.Infof("Demo request %s stored", req.ID)
	return nil
}

// ListDemoRequests returns the newest requests first.
func (s *service) ListDemoRequests(ctx context.Context, limit int) ([]*DemoRequest, error) {
	s.ensureStore()

	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	reqs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("cannot list demo requests: %w", err)
	}
	return reqs, nil
}

func recordInvalid() {
	metrics.DemoRequests.WithLabelValues("invalid").Inc()
}
