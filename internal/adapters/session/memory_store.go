package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/spamcheck/internal/core"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a session is not found
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned when a session has expired
	ErrExpired = errors.New("session expired")
)

// CheckerFactory builds the checker of a new session
type CheckerFactory func() *core.Checker

type entry struct {
	checker   *core.Checker
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the SessionStore interface.
// Sessions expire after ttl without activity.
type MemoryStore struct {
	entries     map[string]*entry
	mu          sync.RWMutex
	newChecker  CheckerFactory
	ttl         time.Duration
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(newChecker CheckerFactory, ttl time.Duration, logger *zap.Logger, cleanupFreq time.Duration) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := &MemoryStore{
		entries:     make(map[string]*entry),
		newChecker:  newChecker,
		ttl:         ttl,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
		now:         time.Now,
	}

	// Start background cleanup
	if cleanupFreq > 0 {
		go store.startCleanupTask()
	}

	return store
}

// Get retrieves the checker of a session and refreshes its expiry
func (s *MemoryStore) Get(ctx context.Context, id string) (*core.Checker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.entries, id)
		return nil, ErrExpired
	}
	e.expiresAt = now.Add(s.ttl)

	return e.checker, nil
}

// Create starts a new session
func (s *MemoryStore) Create(ctx context.Context) (string, *core.Checker, error) {
	id := uuid.New().String()
	checker := s.newChecker()

	s.mu.Lock()
	s.entries[id] = &entry{
		checker:   checker,
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	s.logger.Debug("Session created", zap.String("session_id", id))
	return id, checker, nil
}

// Delete removes a session
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Len returns the number of live sessions
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Cleanup removes expired sessions
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expiredCount := 0

	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			expiredCount++
		}
	}

	s.logger.Debug("Cleaned up expired sessions", zap.Int("expired_count", expiredCount))
	return nil
}

// startCleanupTask starts a background task to clean up expired sessions
func (s *MemoryStore) startCleanupTask() {
	ticker := time.NewTicker(s.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Cleanup(context.Background()); err != nil {
				s.logger.Error("Failed to clean up sessions", zap.Error(err))
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}
