package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/storage"
)

// RegistryConfig configures how many stores stay live and for how long.
type RegistryConfig struct {
	IdleTTL           time.Duration
	MaxLive           int
	AllowDualIdentity bool
}

// RegistryStats are simple counters for diagnostics.
type RegistryStats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	IdleTTL   time.Duration `json:"idle_ttl"`
}

// Registry keeps one live Store per browser. A store stays mounted while its
// browser is active; eviction closes it.
type Registry struct {
	kv       model.KeyValueStore
	profiles ProfileFetcher
	logger   *logger.Logger
	cfg      RegistryConfig
	now      func() time.Time

	mu   sync.Mutex
	live map[string]*liveEntry

	hits      int64
	misses    int64
	evictions int64
}

type liveEntry struct {
	store    *Store
	lastSeen time.Time
}

// NewRegistry creates a Registry whose stores persist into namespaces of kv.
func NewRegistry(kv model.KeyValueStore, profiles ProfileFetcher, logger *logger.Logger, cfg RegistryConfig) *Registry {
	if cfg.IdleTTL == 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.MaxLive == 0 {
		cfg.MaxLive = 10000
	}

	return &Registry{
		kv:       kv,
		profiles: profiles,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
		live:     make(map[string]*liveEntry),
	}
}

// Get returns the initialized store for browserID, mounting it on first use.
func (r *Registry) Get(ctx context.Context, browserID string) *Store {
	r.mu.Lock()
	entry, ok := r.live[browserID]
	if ok {
		atomic.AddInt64(&r.hits, 1)
		entry.lastSeen = r.now()
	} else {
		atomic.AddInt64(&r.misses, 1)
		if len(r.live) >= r.cfg.MaxLive {
			r.evictOldestLocked()
		}
		entry = &liveEntry{
			store: NewStore(
				storage.Namespace(r.kv, storage.BrowserPrefix(browserID)),
				r.profiles,
				r.logger.With("browser_id", browserID),
				WithDualIdentity(r.cfg.AllowDualIdentity),
			),
			lastSeen: r.now(),
		}
		r.live[browserID] = entry
	}
	r.mu.Unlock()

	// Rehydration must not be cut short by the request that triggered it.
	entry.store.Initialize(context.WithoutCancel(ctx))
	return entry.store
}

// Evict unmounts the store for browserID if it is live.
func (r *Registry) Evict(browserID string) {
	r.mu.Lock()
	entry, ok := r.live[browserID]
	if ok {
		delete(r.live, browserID)
	}
	r.mu.Unlock()

	if ok {
		atomic.AddInt64(&r.evictions, 1)
		entry.store.Close()
	}
}

// Sweep unmounts every store idle for longer than IdleTTL and returns how many.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.cfg.IdleTTL)

	var expired []*Store
	r.mu.Lock()
	for id, entry := range r.live {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, entry.store)
			delete(r.live, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	atomic.AddInt64(&r.evictions, int64(len(expired)))
	return len(expired)
}

// Run sweeps every interval until ctx is done, then unmounts everything.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("Session registry: evicted idle stores", "count", n)
			}
		}
	}
}

// CloseAll unmounts every live store.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	live := r.live
	r.live = make(map[string]*liveEntry)
	r.mu.Unlock()

	for _, entry := range live {
		entry.store.Close()
	}
}

// Len returns the number of live stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Stats returns registry counters.
func (r *Registry) Stats() RegistryStats {
	return RegistryStats{
		Hits:      atomic.LoadInt64(&r.hits),
		Misses:    atomic.LoadInt64(&r.misses),
		Evictions: atomic.LoadInt64(&r.evictions),
		Size:      r.Len(),
		IdleTTL:   r.cfg.IdleTTL,
	}
}

func (r *Registry) evictOldestLocked() {
	var (
		oldestID string
		oldest   *liveEntry
	)
	for id, entry := range r.live {
		if oldest == nil || entry.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, entry
		}
	}
	if oldest == nil {
		return
	}

	delete(r.live, oldestID)
	atomic.AddInt64(&r.evictions, 1)
	oldest.store.Close()
}
