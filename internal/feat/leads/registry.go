package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kozmoai/site/pkg/kz/config"
	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/metrics"
	"github.com/kozmoai/site/pkg/kz/model"
)

const (
	defaultSurfaceTTL  = 30 * time.Minute
	defaultMaxSurfaces = 10000
	minSweepInterval   = time.Second
)

type surface struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Registry keeps one controller per browser surface and evicts the ones not
// seen for the surface TTL. At most maxSurfaces are kept; a new surface
// beyond that replaces the least recently seen one that is not busy.
type Registry struct {
	service        Service
	autoCloseDelay time.Duration
	ttl            time.Duration
	maxSurfaces    int
	now            model.Clock
	log            logger.Logger

	mu       sync.Mutex
	surfaces map[uuid.UUID]*surface

	stop chan struct{}
	done chan struct{}
}

// NewRegistry creates a registry whose controllers store through service.
func NewRegistry(service Service, cfg *config.Config, log logger.Logger) *Registry {
	ttl := cfg.Leads.SurfaceTTL
	if ttl <= 0 {
		ttl = defaultSurfaceTTL
	}
	maxSurfaces := cfg.Leads.MaxSurfaces
	if maxSurfaces <= 0 {
		maxSurfaces = defaultMaxSurfaces
	}
	return &Registry{
		service:        service,
		autoCloseDelay: cfg.Leads.AutoCloseDelay,
		ttl:            ttl,
		maxSurfaces:    maxSurfaces,
		log:            log,
		surfaces:       make(map[uuid.UUID]*surface),
	}
}

// Get returns the controller for id, creating a closed one on first use.
func (r *Registry) Get(id uuid.UUID) *Controller {
	r.mu.Lock()

	now := r.now.Or()()
	if s, ok := r.surfaces[id]; ok {
		s.lastSeen = now
		r.mu.Unlock()
		return s.ctrl
	}

	var evicted *Controller
	if len(r.surfaces) >= r.maxSurfaces {
		evicted = r.evictOldest()
	}

	s := &surface{
		ctrl:     NewController(r.service, r.autoCloseDelay, r.log),
		lastSeen: now,
	}
	r.surfaces[id] = s
	metrics.OpenSurfaces.Set(float64(len(r.surfaces)))
	r.mu.Unlock()

	if evicted != nil {
		evicted.Close()
	}
	return s.ctrl
}

// Lookup returns the controller for id without creating one.
func (r *Registry) Lookup(id uuid.UUID) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.surfaces[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now.Or()()
	return s.ctrl, true
}

// evictOldest drops the least recently seen surface without a store call in
// flight. If every surface is busy nothing is dropped. Must be called with
// mu held.
func (r *Registry) evictOldest() *Controller {
	var (
		oldestID uuid.UUID
		oldest   *surface
	)
	for id, s := range r.surfaces {
		if s.ctrl.Busy() {
			continue
		}
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, s
		}
	}
	if oldest == nil {
		return nil
	}
	delete(r.surfaces, oldestID)
	return oldest.ctrl
}

// Len returns the number of tracked surfaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.surfaces)
}

// Start runs the sweeper until Stop.
func (r *Registry) Start(ctx context.Context) error {
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	interval := r.ttl / 4
	if interval < minSweepInterval {
		interval = minSweepInterval
	}

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := r.sweep(); n > 0 {
					r.log.Debugf("Evicted %d idle lead form surfaces", n)
				}
			case <-r.stop:
				return
			}
		}
	}()

	r.log.Infof("Lead surface registry started (ttl %s)", r.ttl)
	return nil
}

// Stop ends the sweeper.
func (r *Registry) Stop(ctx context.Context) error {
	if r.stop == nil {
		return nil
	}
	close(r.stop)
	select {
	case <-r.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	r.stop = nil
	return nil
}

// sweep closes and drops surfaces idle for longer than the TTL. Surfaces
// with a store call in flight are kept.
func (r *Registry) sweep() int {
	r.mu.Lock()
	cutoff := r.now.Or()().Add(-r.ttl)
	var evicted []*Controller
	for id, s := range r.surfaces {
		if s.lastSeen.After(cutoff) || s.ctrl.Busy() {
			continue
		}
		delete(r.surfaces, id)
		evicted = append(evicted, s.ctrl)
	}
	metrics.OpenSurfaces.Set(float64(len(r.surfaces)))
	r.mu.Unlock()

	for _, ctrl := range evicted {
		ctrl.Close()
	}
	return len(evicted)
}
