package server

import (
	"context"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/google/uuid"

	"github.com/strangelove-ventures/ata-devtool/form"
	"github.com/strangelove-ventures/ata-devtool/relayer"
)

// Session is one browser's form: its own controller and the toasts it has
// not displayed yet.
type Session struct {
	ID         string
	Controller *form.Controller

	mu       sync.Mutex
	pending  []form.Notification
	lastSeen time.Time
}

// Notify queues a toast for the next page render.
func (s *Session) Notify(n form.Notification) {
	s.mu.Lock()
	s.pending = append(s.pending, n)
	s.mu.Unlock()
}

// DrainToasts returns and clears the queued toasts.
func (s *Session) DrainToasts() []form.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionStore keeps sessions in memory, keyed by a random uuid.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	adapter form.Adapter
	logger  log.Logger
	metrics *relayer.PromMetrics
	ttl     time.Duration
	now     func() time.Time
}

func NewSessionStore(adapter form.Adapter, ttl time.Duration, logger log.Logger, metrics *relayer.PromMetrics) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		adapter:  adapter,
		logger:   logger.With("component", "sessions"),
		metrics:  metrics,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for id, creating a new one when id is unknown.
// The returned bool is true when a session was created.
func (st *SessionStore) Get(id string) (*Session, bool) {
	now := st.now()

	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.touch(now)
		return s, false
	}

	s = &Session{ID: uuid.NewString(), lastSeen: now}
	s.Controller = form.NewController(st.adapter, s, st.logger, st.metrics)

	st.mu.Lock()
	st.sessions[s.ID] = s
	count := len(st.sessions)
	st.mu.Unlock()

	if st.metrics != nil {
		st.metrics.SetActiveSessions(count)
	}
	st.logger.Debug("Created session", "id", s.ID)
	return s, true
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the ttl. Sessions with a
// submission in flight are kept.
func (st *SessionStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) && !s.Controller.State().IsLoading {
			delete(st.sessions, id)
			removed++
		}
	}
	count := len(st.sessions)
	st.mu.Unlock()

	if st.metrics != nil {
		st.metrics.SetActiveSessions(count)
	}
	if removed > 0 {
		st.logger.Debug("Evicted idle sessions", "removed", removed, "remaining", count)
	}
	return removed
}

// StartEviction sweeps every interval until ctx is done.
func (st *SessionStore) StartEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
