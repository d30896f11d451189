package persist

import (
	"context"
	"sync"

	"github.com/l1jgo/skills/internal/skills"
)

type storedSkill struct {
	level int
	xp    float64
}

// MemoryStore keeps profiles for the life of the process. It is used when no
// database is configured.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]storedSkill
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]storedSkill)}
}

func (m *MemoryStore) LoadProfile(_ context.Context, name string) (*skills.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := skills.NewProfile(name)
	for i, s := range m.data[name] {
		p.Restore(skills.SkillType(i), s.level, s.xp)
	}
	return p, nil
}

func (m *MemoryStore) SaveProfile(_ context.Context, p *skills.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := skills.AllSkills()
	rows := make([]storedSkill, len(all))
	for i, st := range all {
		rows[i] = storedSkill{level: p.Level(st), xp: p.XP(st)}
	}
	m.data[p.Name] = rows
	return nil
}
