package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/genie-desktop/genie-backend/internal/shared"
)

// Store holds conversation sessions. Update runs fn under that session's
// lock for the whole append-invoke-append unit; updates on different
// sessions proceed in parallel.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Exists(ctx context.Context, id string) bool
	History(ctx context.Context, id string) ([]Turn, error)
	Update(ctx context.Context, id string, fn func(*Session) error) error
	Count(ctx context.Context) int
}

type MemoryConfig struct {
	MaxIdle       time.Duration
	MaxSessions   int
	SweepInterval time.Duration
}

type memoryEntry struct {
	mu   sync.Mutex
	sess *Session
}

// MemoryStore is the canonical store: sessions live for the process
// lifetime unless evicted by the idle janitor or the session cap.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry

	cfg    MemoryConfig
	logger *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

func NewMemoryStore(cfg MemoryConfig, logger *slog.Logger) *MemoryStore {
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		cfg:     cfg,
		logger:  logger.With("component", "session-store"),
		stop:    make(chan struct{}),
	}
}

func (s *MemoryStore) Create(ctx context.Context) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:           shared.NewID("sess_"),
		CreatedAt:    now,
		LastActiveAt: now,
	}

	s.mu.Lock()
	s.entries[sess.ID] = &memoryEntry{sess: sess}
	evicted := s.enforceCapLocked()
	s.mu.Unlock()

	if evicted > 0 {
		s.logger.Info("evicted sessions over cap", "count", evicted)
	}
	return sess, nil
}

func (s *MemoryStore) Exists(ctx context.Context, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[id]
	return ok
}

func (s *MemoryStore) History(ctx context.Context, id string) ([]Turn, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, shared.ErrInvalidSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	turns := make([]Turn, len(e.sess.Turns))
	copy(turns, e.sess.Turns)
	return turns, nil
}

// Update holds the per-session lock across fn, including any model call fn
// performs, so a concurrent Update on the same id waits for the full
// exchange to finish.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return shared.ErrInvalidSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err := fn(e.sess)
	e.sess.LastActiveAt = time.Now()
	return err
}

func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartJanitor sweeps idle sessions until Close is called. No-op when no
// idle limit is configured.
func (s *MemoryStore) StartJanitor() {
	if s.cfg.MaxIdle <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(s.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.sweep(); n > 0 {
					s.logger.Info("evicted idle sessions", "count", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweep() int {
	cutoff := time.Now().Add(-s.cfg.MaxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	var evicted int
	for id, e := range s.entries {
		if !e.sess.LastActiveAt.Before(cutoff) {
			continue
		}
		// an entry mid-update is in use; leave it for the next sweep
		if !e.mu.TryLock() {
			continue
		}
		delete(s.entries, id)
		e.mu.Unlock()
		evicted++
	}
	return evicted
}

// enforceCapLocked evicts the least recently active sessions beyond
// MaxSessions. Caller holds s.mu.
func (s *MemoryStore) enforceCapLocked() int {
	if s.cfg.MaxSessions <= 0 || len(s.entries) <= s.cfg.MaxSessions {
		return 0
	}

	type aged struct {
		id   string
		last time.Time
	}
	all := make([]aged, 0, len(s.entries))
	for id, e := range s.entries {
		all = append(all, aged{id: id, last: e.sess.LastActiveAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].last.Before(all[j].last) })

	over := len(s.entries) - s.cfg.MaxSessions
	var evicted int
	for i := 0; i < over; i++ {
		e := s.entries[all[i].id]
		// never evict a session mid-update; the cap may overshoot until
		// that exchange finishes
		if !e.mu.TryLock() {
			continue
		}
		delete(s.entries, all[i].id)
		e.mu.Unlock()
		evicted++
	}
	return evicted
}
