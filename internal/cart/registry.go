package cart

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is how often idle carts are looked for.
const DefaultSweepInterval = time.Minute

// Registry owns one Store per browsing session. Carts live only in memory
// and are dropped once idle for longer than idleTTL.
type Registry struct {
	mu      sync.Mutex
	stores  map[string]*Store
	idleTTL time.Duration
	now     func() time.Time
	logger  *zap.Logger

	stopSweep chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func NewRegistry(idleTTL time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		stores:    make(map[string]*Store),
		idleTTL:   idleTTL,
		now:       time.Now,
		logger:    logger,
		stopSweep: make(chan struct{}),
	}
}

// Get returns the cart of sessionID, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[sessionID]
	if !ok {
		s = NewStore(sessionID)
		s.now = r.now
		r.stores[sessionID] = s
	}
	s.markActive()
	return s
}

// Rekey moves the cart of from to the session id to, replacing any cart
// already held under to. It is a no-op when from has no cart.
func (r *Registry) Rekey(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[from]
	if !ok || from == to {
		return
	}
	delete(r.stores, from)
	s.rename(to)
	s.markActive()
	r.stores[to] = s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Start runs the idle sweep in the background until Stop is called.
func (r *Registry) Start(interval time.Duration) {
	r.wg.Add(1)
	go r.sweepLoop(interval)
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stopSweep) })
	r.wg.Wait()
}

func (r *Registry) sweepLoop(interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stopSweep:
			return
		}
	}
}

func (r *Registry) evictIdle() int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	evicted := 0
	for id, s := range r.stores {
		if s.idleSince().Before(cutoff) {
			delete(r.stores, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("evicted idle carts", zap.Int("count", evicted), zap.Int("remaining", len(r.stores)))
	}
	return evicted
}
