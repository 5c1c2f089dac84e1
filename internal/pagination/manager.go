// Package pagination owns the lifecycle of interactive result browsing: a
// session is created when a command yields a multi-item result set, mutated
// only by owner navigation events, and torn down on expiry. The session table
// is the one piece of process-wide mutable state; all access goes through the
// Manager, which serializes navigation per session key.
package pagination

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/starlover/watchtower/internal/render"
)

var (
	// ErrSessionNotFound means the key has no active session: unknown,
	// already expired, or torn down. Callers present the interaction as inert.
	ErrSessionNotFound = errors.New("pagination session not found")
	// ErrNotOwner means the acting user is not the session owner. State is
	// not mutated and the actor receives no effect.
	ErrNotOwner = errors.New("actor does not own this session")
	// ErrEmptyResultSet rejects session creation without items.
	ErrEmptyResultSet = errors.New("result set is empty")
	// ErrSessionExists rejects a second session under the same key.
	ErrSessionExists = errors.New("session already exists for this key")
)

// Direction is a navigation token from a component interaction.
type Direction int

const (
	Prev Direction = iota
	Next
)

// Renderer is the seam to the sending collaborator. UpdatePage re-renders a
// page in place; StripControls removes the navigation row on expiry.
type Renderer interface {
	UpdatePage(channelID, messageID string, item render.Item, page render.PageContext) error
	StripControls(channelID, messageID string) error
}

// Session tracks one user's walk through a result set. Only currentIndex is
// mutable, and only the Manager touches it.
type Session struct {
	Key       string
	ChannelID string
	OwnerID   string
	Items     []render.Item
	CreatedAt time.Time
	ExpiresAt time.Time

	// mu serializes navigation for this key so near-simultaneous clicks
	// apply in arrival order against one authoritative index.
	mu      sync.Mutex
	index   int
	expired bool
}

// Index returns the current page index.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Manager owns the session table.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	renderer Renderer
	log      *zap.Logger
	now      func() time.Time
}

// NewManager returns a manager with the given session TTL.
func NewManager(ttl time.Duration, renderer Renderer, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		renderer: renderer,
		log:      log,
		now:      time.Now,
	}
}

// Create registers a session for a fresh result message at index 0. The
// initial render is the caller's responsibility; the message already shows
// page 0 when the key (its message ID) becomes known.
func (m *Manager) Create(key, channelID, ownerID string, items []render.Item) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrEmptyResultSet
	}
	now := m.now()
	s := &Session{
		Key:       key,
		ChannelID: channelID,
		OwnerID:   ownerID,
		Items:     items,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[key]; exists {
		return nil, ErrSessionExists
	}
	m.sessions[key] = s
	return s, nil
}

// Navigate applies one owner navigation step. It clamps at both boundaries
// without wraparound; a boundary click is a no-op that emits no render.
// Returns whether the index moved.
func (m *Manager) Navigate(key, actorID string, dir Direction) (bool, error) {
	m.mu.Lock()
	s, ok := m.sessions[key]
	m.mu.Unlock()
	if !ok {
		return false, ErrSessionNotFound
	}

	// Lazy expiry check: a session at or past its deadline behaves exactly
	// as if the sweeper had already collected it.
	if !m.now().Before(s.ExpiresAt) {
		m.expire(s)
		return false, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expired {
		return false, ErrSessionNotFound
	}
	if actorID != s.OwnerID {
		return false, ErrNotOwner
	}

	next := s.index
	switch dir {
	case Prev:
		next--
	case Next:
		next++
	}
	if next < 0 || next >= len(s.Items) {
		return false, nil
	}

	s.index = next
	page := render.PageContext{Index: next, Total: len(s.Items)}
	if err := m.renderer.UpdatePage(s.ChannelID, s.Key, s.Items[next], page); err != nil {
		// The move stands; transmission errors are logged, never retried.
		m.log.Warn("page render failed",
			zap.String("session", s.Key),
			zap.Int("index", next),
			zap.Error(err))
	}
	return true, nil
}

// Run sweeps expired sessions until ctx is done. Call from the bot
// lifecycle alongside the gateway loop.
func (m *Manager) Run(ctx context.Context) {
	interval := m.ttl / 10
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.Teardown()
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep expires every session past its deadline.
func (m *Manager) sweep() {
	now := m.now()
	m.mu.Lock()
	var due []*Session
	for _, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			due = append(due, s)
		}
	}
	m.mu.Unlock()
	for _, s := range due {
		m.expire(s)
	}
}

// expire strips the navigation controls at most once and releases the
// session entry. Removal is never blocked by a rendering failure.
func (m *Manager) expire(s *Session) {
	s.mu.Lock()
	already := s.expired
	s.expired = true
	s.mu.Unlock()

	if !already {
		if err := m.renderer.StripControls(s.ChannelID, s.Key); err != nil {
			m.log.Warn("failed to strip controls on expiry",
				zap.String("session", s.Key),
				zap.Error(err))
		}
	}

	m.mu.Lock()
	delete(m.sessions, s.Key)
	m.mu.Unlock()
}

// Teardown expires every remaining session. Used at process shutdown.
func (m *Manager) Teardown() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.Unlock()
	for _, s := range all {
		m.expire(s)
	}
}

// Len reports the number of active sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
