// Package session owns the lifetime of per-user snapshots: load on first
// access, serialized mutation, debounced write-back and idle eviction. The
// store package stays free of locks and I/O because this package holds both.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/config"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/repository"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

const saveTimeout = 10 * time.Second

// Session is one user's live snapshot. All access goes through View and
// Update, which serialize on the session mutex.
type Session struct {
	userID string
	mgr    *Manager

	mu       sync.Mutex
	store    *store.Store
	timer    *time.Timer
	dirty    bool
	lastUsed time.Time
}

// Manager hands out sessions keyed by user id. Every write schedules a
// debounced flush; a burst of edits collapses into one Save.
type Manager struct {
	repo     repository.SnapshotRepository
	logger   *zap.Logger
	debounce time.Duration
	idle     time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewManager creates the session manager and starts its eviction loop.
func NewManager(repo repository.SnapshotRepository, cfg *config.SessionConfig, logger *zap.Logger) *Manager {
	m := &Manager{
		repo:     repo,
		logger:   logger,
		debounce: cfg.SaveDebounce,
		idle:     cfg.IdleTimeout,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	m.wg.Add(1)
	go m.evictLoop()
	return m
}

// Acquire returns the user's session, loading the snapshot on first access.
// A failed load falls back to an empty snapshot so the user can keep
// working; the error is logged, not surfaced.
func (m *Manager) Acquire(ctx context.Context, userID string) *Session {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		s.touch()
		return s
	}
	m.mu.Unlock()

	// Load outside the map lock; the double-check below resolves races
	// between concurrent first requests of the same user.
	snap, err := m.repo.Load(ctx, userID)
	if err != nil {
		m.logger.Error("snapshot load failed, starting empty",
			zap.String("user_id", userID), zap.Error(err))
		snap = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		s.touch()
		return s
	}
	s := &Session{userID: userID, mgr: m, store: store.New(snap), lastUsed: time.Now()}
	m.sessions[userID] = s
	return s
}

// Close flushes every dirty session and stops the eviction loop.
func (m *Manager) Close(ctx context.Context) {
	close(m.done)
	m.wg.Wait()

	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.mu.Lock()
		s.stopTimerLocked()
		if s.dirty {
			s.saveLocked(ctx)
		}
		s.mu.Unlock()
	}
}

func (m *Manager) evictLoop() {
	defer m.wg.Done()
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.idle)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		s.mu.Lock()
		if s.lastUsed.Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
		s.mu.Unlock()
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.mu.Lock()
		s.stopTimerLocked()
		if s.dirty {
			s.saveLocked(context.Background())
		}
		s.mu.Unlock()
		m.logger.Debug("evicted idle session", zap.String("user_id", s.userID))
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

// View runs fn with read access to the store.
func (s *Session) View(fn func(*store.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	fn(s.store)
}

// Update runs fn with write access and schedules a debounced save. Each
// write resets the timer, so the save fires once the user pauses.
func (s *Session) Update(fn func(*store.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	fn(s.store)
	s.dirty = true
	if s.timer != nil {
		s.timer.Reset(s.mgr.debounce)
		return
	}
	s.timer = time.AfterFunc(s.mgr.debounce, s.flush)
}

// Flush writes the snapshot out immediately if dirty. Logout and shutdown
// paths use it to skip the debounce window.
func (s *Session) Flush(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	if s.dirty {
		s.saveLocked(ctx)
	}
}

func (s *Session) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = nil
	if s.dirty {
		s.saveLocked(context.Background())
	}
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// saveLocked persists the snapshot. A failed save is logged and the session
// stays dirty so the next write retries it; the user's request is never
// failed over persistence.
func (s *Session) saveLocked(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := s.mgr.repo.Save(ctx, s.userID, s.store.Snapshot()); err != nil {
		s.mgr.logger.Error("snapshot save failed",
			zap.String("user_id", s.userID), zap.Error(err))
		return
	}
	s.dirty = false
}
