package world

import (
	"time"

	"github.com/l1jgo/skills/internal/core/ecs"
	"github.com/l1jgo/skills/internal/core/event"
	"github.com/l1jgo/skills/internal/skills"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MobInfo is a non-player living entity.
type MobInfo struct {
	Entity ecs.EntityID
	Loc    skills.Location
	HP     float64
	Tamed  bool
	Owner  ecs.EntityID
}

var _ skills.Target = (*MobInfo)(nil)

func (m *MobInfo) ID() ecs.EntityID          { return m.Entity }
func (m *MobInfo) Location() skills.Location { return m.Loc }
func (m *MobInfo) IsPlayer() bool            { return false }

// GroundItem is a stack dropped into the world.
type GroundItem struct {
	Item  string
	Count int
	Loc   skills.Location
}

// State is the simulated host world: players, mobs, and ground items. It is
// the skills' Combat surface and the tracker's Liveness source.
type State struct {
	ecs      *ecs.World
	bus      *event.Bus
	notifier Notifier
	now      func() time.Time
	log      *zap.Logger

	players map[ecs.EntityID]*PlayerInfo
	byName  map[string]*PlayerInfo
	mobs    map[ecs.EntityID]*MobInfo
	ground  []GroundItem
}

func NewState(w *ecs.World, bus *event.Bus, notifier Notifier, log *zap.Logger) *State {
	return &State{
		ecs:      w,
		bus:      bus,
		notifier: notifier,
		now:      time.Now,
		log:      log,
		players:  make(map[ecs.EntityID]*PlayerInfo, 64),
		byName:   make(map[string]*PlayerInfo, 64),
		mobs:     make(map[ecs.EntityID]*MobInfo, 256),
	}
}

// SetClock replaces the wall clock (tests).
func (s *State) SetClock(now func() time.Time) { s.now = now }

// AddPlayer puts a player with the given profile into the world. The caller
// attaches skill managers.
func (s *State) AddPlayer(profile *skills.Profile, loc skills.Location, lang language.Tag) *PlayerInfo {
	p := &PlayerInfo{
		Entity:        s.ecs.CreateEntity(),
		Name:          profile.Name,
		Loc:           loc,
		HP:            20,
		MaxHP:         20,
		Perms:         make(map[skills.Permission]bool, 8),
		Notifications: true,
		Profile:       profile,
		printer:       message.NewPrinter(lang),
		notifier:      s.notifier,
	}
	s.players[p.Entity] = p
	s.byName[p.Name] = p
	return p
}

// RemovePlayer takes a player out of the world (logout).
func (s *State) RemovePlayer(id ecs.EntityID) {
	p, ok := s.players[id]
	if !ok {
		return
	}
	delete(s.players, id)
	delete(s.byName, p.Name)
	s.ecs.MarkForDestruction(id)
}

func (s *State) SpawnMob(loc skills.Location, hp float64) *MobInfo {
	m := &MobInfo{Entity: s.ecs.CreateEntity(), Loc: loc, HP: hp}
	s.mobs[m.Entity] = m
	return m
}

func (s *State) Player(id ecs.EntityID) (*PlayerInfo, bool) {
	p, ok := s.players[id]
	return p, ok
}

func (s *State) PlayerByName(name string) (*PlayerInfo, bool) {
	p, ok := s.byName[name]
	return p, ok
}

func (s *State) Mob(id ecs.EntityID) (*MobInfo, bool) {
	m, ok := s.mobs[id]
	return m, ok
}

// Target resolves any living entity.
func (s *State) Target(id ecs.EntityID) (skills.Target, bool) {
	if p, ok := s.players[id]; ok {
		return p, true
	}
	if m, ok := s.mobs[id]; ok {
		return m, true
	}
	return nil, false
}

// Profile implements skills.Profiles.
func (s *State) Profile(id ecs.EntityID) (*skills.Profile, bool) {
	p, ok := s.players[id]
	if !ok {
		return nil, false
	}
	return p.Profile, true
}

// AllPlayers calls fn for each in-world player.
func (s *State) AllPlayers(fn func(*PlayerInfo)) {
	for _, p := range s.players {
		fn(p)
	}
}

func (s *State) PlayerCount() int { return len(s.players) }
func (s *State) MobCount() int    { return len(s.mobs) }

// TicksLived implements tracker.Liveness.
func (s *State) TicksLived(id ecs.EntityID) (uint32, bool) {
	return s.ecs.TicksLived(id)
}

// --- Combat surface ---

// FakeDamage deals a synthetic secondary hit right away and publishes it.
func (s *State) FakeDamage(source, target ecs.EntityID, cause skills.DamageCause, damage float64) float64 {
	dealt := s.damage(target, damage)
	if dealt > 0 {
		event.Emit(s.bus, &event.FakeDamage{Source: source, Target: target, Cause: cause, Damage: dealt})
	}
	return dealt
}

func (s *State) Teleport(id ecs.EntityID, loc skills.Location) {
	if p, ok := s.players[id]; ok {
		p.Loc = loc
		return
	}
	if m, ok := s.mobs[id]; ok {
		m.Loc = loc
	}
}

func (s *State) AddEffect(id ecs.EntityID, eff skills.Effect) {
	if p, ok := s.players[id]; ok {
		p.Effects = append(p.Effects, eff)
	}
}

// ApplyDamage is the last EntityDamaged subscriber: it applies whatever
// damage the skill listeners left on the event.
func (s *State) ApplyDamage(ev *event.EntityDamaged) {
	if ev.Cancelled || ev.Damage <= 0 {
		return
	}
	s.damage(ev.Target, ev.Damage)
}

// damage lowers health and handles death. It returns the damage dealt, zero
// when the target no longer exists.
func (s *State) damage(id ecs.EntityID, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if p, ok := s.players[id]; ok {
		p.HP -= amount
		if p.HP <= 0 {
			event.Emit(s.bus, &event.EntityDied{Entity: id, Location: p.Loc})
			s.respawn(p)
		}
		return amount
	}
	if m, ok := s.mobs[id]; ok {
		m.HP -= amount
		if m.HP <= 0 {
			event.Emit(s.bus, &event.EntityDied{Entity: id, Location: m.Loc})
			delete(s.mobs, id)
			s.ecs.MarkForDestruction(id)
		}
		return amount
	}
	return 0
}

func (s *State) respawn(p *PlayerInfo) {
	p.HP = p.MaxHP
	p.Effects = p.Effects[:0]
	p.RespawnAt = s.now()
	event.Emit(s.bus, &event.PlayerRespawned{Player: p.Entity})
}

// DropItems places count items at loc.
func (s *State) DropItems(loc skills.Location, item string, count int) {
	if count <= 0 {
		return
	}
	s.ground = append(s.ground, GroundItem{Item: item, Count: count, Loc: loc})
	s.log.Debug("items dropped", zap.String("item", item), zap.Int("count", count))
}

func (s *State) GroundItems() []GroundItem { return s.ground }

// SpawnArrow creates a short-lived projectile entity. It is destroyed at the
// end of the tick it was fired in.
func (s *State) SpawnArrow() ecs.EntityID {
	id := s.ecs.CreateEntity()
	s.ecs.MarkForDestruction(id)
	return id
}
