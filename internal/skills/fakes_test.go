package skills

import (
	"time"

	"github.com/l1jgo/skills/internal/config"
	"github.com/l1jgo/skills/internal/core/ecs"
	"github.com/l1jgo/skills/internal/data"
	"go.uber.org/zap"
)

// seqRoller returns the queued draws in order, then n-1 (the least likely to
// succeed) once they run out.
type seqRoller struct {
	draws []int
	calls int
}

func (r *seqRoller) IntN(n int) int {
	r.calls++
	if len(r.draws) == 0 {
		return n - 1
	}
	d := r.draws[0]
	r.draws = r.draws[1:]
	return d
}

type sentMessage struct {
	key  string
	args []any
}

type fakeActor struct {
	id          ecs.EntityID
	loc         Location
	player      bool
	levels      map[SkillType]int
	health      float64
	sneaking    bool
	vehicle     bool
	hand        string
	featherFall bool
	perms       map[Permission]bool
	lucky       bool
	notify      bool
	respawn     time.Time
	messages    []sentMessage
}

func newFakeActor(id ecs.EntityID) *fakeActor {
	return &fakeActor{
		id:     id,
		loc:    Location{World: "world"},
		player: true,
		levels: map[SkillType]int{},
		health: 20,
		notify: true,
		perms: map[Permission]bool{
			PermDodge: true, PermRoll: true, PermGracefulRoll: true,
			PermDaze: true, PermBonusDamage: true, PermArrowRetrieval: true,
		},
	}
}

func (a *fakeActor) ID() ecs.EntityID                { return a.id }
func (a *fakeActor) Location() Location              { return a.loc }
func (a *fakeActor) IsPlayer() bool                  { return a.player }
func (a *fakeActor) SkillLevel(s SkillType) int      { return a.levels[s] }
func (a *fakeActor) Health() float64                 { return a.health }
func (a *fakeActor) IsSneaking() bool                { return a.sneaking }
func (a *fakeActor) InsideVehicle() bool             { return a.vehicle }
func (a *fakeActor) ItemInHand() string              { return a.hand }
func (a *fakeActor) BootsHaveFeatherFalling() bool   { return a.featherFall }
func (a *fakeActor) HasPermission(p Permission) bool { return a.perms[p] }
func (a *fakeActor) IsLucky(SkillType) bool          { return a.lucky }
func (a *fakeActor) ChatNotifications() bool         { return a.notify }
func (a *fakeActor) RespawnTime() time.Time          { return a.respawn }
func (a *fakeActor) SendMessage(key string, args ...any) {
	a.messages = append(a.messages, sentMessage{key, args})
}

func (a *fakeActor) keys() []string {
	out := make([]string, 0, len(a.messages))
	for _, m := range a.messages {
		out = append(out, m.key)
	}
	return out
}

type fakeHit struct {
	source, target ecs.EntityID
	damage         float64
}

type fakeCombat struct {
	hits      []fakeHit
	teleports map[ecs.EntityID]Location
	effects   map[ecs.EntityID][]Effect
}

func newFakeCombat() *fakeCombat {
	return &fakeCombat{
		teleports: map[ecs.EntityID]Location{},
		effects:   map[ecs.EntityID][]Effect{},
	}
}

func (c *fakeCombat) FakeDamage(source, target ecs.EntityID, _ DamageCause, damage float64) float64 {
	c.hits = append(c.hits, fakeHit{source, target, damage})
	return damage
}

func (c *fakeCombat) Teleport(id ecs.EntityID, loc Location) { c.teleports[id] = loc }
func (c *fakeCombat) AddEffect(id ecs.EntityID, eff Effect) {
	c.effects[id] = append(c.effects[id], eff)
}

type xpGain struct {
	skill SkillType
	xp    float64
}

type fakeRewards struct {
	gains []xpGain
}

func (r *fakeRewards) ApplyXPGain(_ Actor, skill SkillType, xp float64) {
	r.gains = append(r.gains, xpGain{skill, xp})
}

func (r *fakeRewards) total() float64 {
	var sum float64
	for _, g := range r.gains {
		sum += g.xp
	}
	return sum
}

type fakeArrows struct {
	counts map[ecs.EntityID]int
}

func (f *fakeArrows) Increment(id ecs.EntityID) { f.counts[id]++ }

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	deps    *Deps
	rng     *seqRoller
	combat  *fakeCombat
	rewards *fakeRewards
	arrows  *fakeArrows
}

func newTestEnv(draws ...int) *testEnv {
	env := &testEnv{
		rng:     &seqRoller{draws: draws},
		combat:  newFakeCombat(),
		rewards: &fakeRewards{},
		arrows:  &fakeArrows{counts: map[ecs.EntityID]int{}},
	}
	env.deps = &Deps{
		Config:  config.Defaults(),
		Table:   data.DefaultSkillTable(),
		Combat:  env.combat,
		Rewards: env.rewards,
		Arrows:  env.arrows,
		Rand:    env.rng,
		Now:     func() time.Time { return testNow },
		Log:     zap.NewNop(),
	}
	return env
}
