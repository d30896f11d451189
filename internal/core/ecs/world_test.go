package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPool_ZeroNeverAlive(t *testing.T) {
	p := NewEntityPool()
	assert.False(t, p.Alive(0))

	id := p.Create()
	assert.False(t, id.IsZero())
	assert.True(t, p.Alive(id))
}

func TestEntityPool_StaleHandleAfterReuse(t *testing.T) {
	p := NewEntityPool()
	old := p.Create()
	p.Destroy(old)

	reused := p.Create()
	assert.Equal(t, old.Index(), reused.Index())
	assert.NotEqual(t, old, reused)
	assert.False(t, p.Alive(old))
	assert.True(t, p.Alive(reused))

	// destroying a stale handle must not kill the new occupant
	p.Destroy(old)
	assert.True(t, p.Alive(reused))
}

func TestWorld_TicksLived(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	ticks, ok := w.TicksLived(id)
	require.True(t, ok)
	assert.Equal(t, uint32(0), ticks)

	w.Advance()
	w.Advance()
	ticks, _ = w.TicksLived(id)
	assert.Equal(t, uint32(2), ticks)

	w.SetFrozen(id, true)
	w.Advance()
	ticks, _ = w.TicksLived(id)
	assert.Equal(t, uint32(2), ticks, "frozen entity must not advance")
}

func TestWorld_FlushDestroyQueue(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	assert.True(t, w.Alive(id), "destruction is deferred")

	assert.Equal(t, 1, w.FlushDestroyQueue())
	assert.False(t, w.Alive(id))

	_, ok := w.TicksLived(id)
	assert.False(t, ok)
}
