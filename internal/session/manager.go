package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Allknowingroger/Image-Fusion/internal/metrics"
	"github.com/google/uuid"
)

// Manager owns every live session. Sessions idle past the TTL are pruned by
// the janitor; nothing is persisted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl          time.Duration
	defaultCount int
	logger       *log.Logger
}

func NewManager(ttl time.Duration, defaultCount int, logger *log.Logger) *Manager {
	if defaultCount < MinImages {
		defaultCount = MinImages
	}
	if defaultCount > MaxImages {
		defaultCount = MaxImages
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		ttl:          ttl,
		defaultCount: defaultCount,
		logger:       logger,
	}
}

// Get returns the session for id and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if ok {
		s.touch()
	}
	return s, ok
}

func (m *Manager) Create() *Session {
	s := NewSession(uuid.NewString(), m.defaultCount)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions(n)
	return s
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartJanitor blocks, pruning idle sessions every interval until the
// context ends. Run it on its own goroutine.
func (m *Manager) StartJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.prune(time.Now()); n > 0 {
				m.logger.Printf("pruned %d idle sessions\n", n)
			}
		}
	}
}

func (m *Manager) prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastSeen()) > m.ttl {
			delete(m.sessions, id)
			pruned++
		}
	}
	if pruned > 0 {
		metrics.ActiveSessions(len(m.sessions))
	}
	return pruned
}
