package persist

import (
	"context"
	"testing"

	"github.com/l1jgo/skills/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	fresh, err := m.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Level(skills.Archery))

	p := skills.NewProfile("alice")
	p.SetLevel(skills.Archery, 120)
	p.AddXP(skills.Acrobatics, 300, skills.Builtin{})
	require.NoError(t, m.SaveProfile(ctx, p))

	got, err := m.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 120, got.Level(skills.Archery))
	assert.Equal(t, 300.0, got.XP(skills.Acrobatics))
	assert.False(t, got.Dirty(), "restored profiles start clean")
}
