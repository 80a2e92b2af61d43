package leads

import (
	"context"
	"sync"
	"time"

	"github.com/kozmoai/site/pkg/kz/logger"
)

var fixedNow = time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// stubStore records inserts and can fail or block.
type stubStore struct {
	mu      sync.Mutex
	inserts []DemoRequest
	err     error

	// When release is set, Insert blocks until it is closed. With ignoreCtx
	// it also ignores its context, like a store that never settles.
	release   chan struct{}
	ignoreCtx bool
	started   chan struct{}
}

func (s *stubStore) Insert(ctx context.Context, req *DemoRequest) error {
	s.mu.Lock()
	s.inserts = append(s.inserts, *req)
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}

	if s.release != nil {
		if s.ignoreCtx {
			<-s.release
		} else {
			select {
			case <-s.release:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return s.err
}

func (s *stubStore) List(ctx context.Context, limit int) ([]*DemoRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*DemoRequest, 0, len(s.inserts))
	for i := len(s.inserts) - 1; i >= 0 && len(out) < limit; i-- {
		req := s.inserts[i]
		out = append(out, &req)
	}
	return out, s.err
}

func (s *stubStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inserts)
}

func (s *stubStore) last() DemoRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserts[len(s.inserts)-1]
}

func newStubService(store Store, timeout time.Duration) Service {
	return NewServiceWithStore(store, timeout, fixedClock, logger.NewNoopLogger())
}

func boolPtr(b bool) *bool { return &b }

func validInput() FormInput {
	return FormInput{Name: "Al", Email: "al@x.com", Subscribe: boolPtr(true)}
}
