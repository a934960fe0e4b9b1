package session

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(ttl time.Duration) *Manager {
	return NewManager(ttl, 2, log.New(io.Discard, "", 0))
}

func TestManagerCreateAndGet(t *testing.T) {
	m := testManager(time.Hour)

	s := m.Create()
	require.NotEmpty(t, s.ID())

	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestManagerClampsDefaultCount(t *testing.T) {
	m := NewManager(time.Hour, 9, log.New(io.Discard, "", 0))
	assert.Equal(t, MaxImages, m.Create().State().ImageCount)

	m = NewManager(time.Hour, 0, log.New(io.Discard, "", 0))
	assert.Equal(t, MinImages, m.Create().State().ImageCount)
}

func TestManagerPrunesIdleSessions(t *testing.T) {
	m := testManager(time.Minute)

	idle := m.Create()
	fresh := m.Create()

	idle.mu.Lock()
	idle.lastSeen = time.Now().Add(-2 * time.Minute)
	idle.mu.Unlock()

	pruned := m.prune(time.Now())
	assert.Equal(t, 1, pruned)

	_, ok := m.Get(idle.ID())
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID())
	assert.True(t, ok)
}
