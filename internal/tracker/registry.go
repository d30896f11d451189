// Package tracker counts arrows stuck in living entities so they can be
// dropped when the entity dies, and forgets entities that stop being
// simulated.
package tracker

import (
	"github.com/l1jgo/skills/internal/core/ecs"
	coresys "github.com/l1jgo/skills/internal/core/system"
	"go.uber.org/zap"
)

// Liveness reports how many ticks an entity has been simulated. ok is false
// when the entity can no longer be resolved.
type Liveness interface {
	TicksLived(id ecs.EntityID) (ticks uint32, ok bool)
}

// Scheduler runs a callback repeatedly on the game loop.
type Scheduler interface {
	ScheduleRepeating(fn func(), delay, interval uint64) *coresys.Handle
}

// Record is the tracking state of one entity. It does not own the entity.
type Record struct {
	entity    ecs.EntityID
	arrows    int
	prevTicks uint32
	task      *coresys.Handle
}

// active samples the liveness counter. An unchanged sample (or a failed
// lookup) means the host stopped simulating the entity. Comparing against the
// previous sample only works if this runs at most once per server tick.
func (r *Record) active(live Liveness) bool {
	ticks, ok := live.TicksLived(r.entity)
	if !ok || ticks == r.prevTicks {
		return false
	}
	r.prevTicks = ticks
	return true
}

// Registry maps entities to their arrow records. Game loop only.
type Registry struct {
	records  map[ecs.EntityID]*Record
	sched    Scheduler
	live     Liveness
	interval uint64
	log      *zap.Logger
}

func NewRegistry(sched Scheduler, live Liveness, pollTicks uint64, log *zap.Logger) *Registry {
	return &Registry{
		records:  make(map[ecs.EntityID]*Record, 64),
		sched:    sched,
		live:     live,
		interval: pollTicks,
		log:      log,
	}
}

// Increment adds one arrow to id, creating its record and poll task on the
// first hit.
func (r *Registry) Increment(id ecs.EntityID) {
	rec, ok := r.records[id]
	if !ok {
		rec = &Record{entity: id}
		rec.task = r.sched.ScheduleRepeating(func() { r.poll(rec) }, r.interval, r.interval)
		r.records[id] = rec
	}
	rec.arrows++
}

func (r *Registry) poll(rec *Record) {
	if rec.active(r.live) {
		return
	}
	r.log.Debug("tracked entity went stale",
		zap.Uint64("entity", uint64(rec.entity)),
		zap.Int("arrows", rec.arrows))
	r.remove(rec)
}

// remove evicts rec and cancels its task in one step so no poll can run for
// an evicted record.
func (r *Registry) remove(rec *Record) {
	if cur, ok := r.records[rec.entity]; ok && cur == rec {
		delete(r.records, rec.entity)
	}
	rec.task.Cancel()
}

// Remove stops tracking id. It reports whether id was tracked.
func (r *Registry) Remove(id ecs.EntityID) bool {
	rec, ok := r.records[id]
	if !ok {
		return false
	}
	r.remove(rec)
	return true
}

// RetrieveArrows stops tracking id and returns how many arrows it carried.
func (r *Registry) RetrieveArrows(id ecs.EntityID) int {
	rec, ok := r.records[id]
	if !ok {
		return 0
	}
	r.remove(rec)
	return rec.arrows
}

// ArrowCount returns the arrows tracked for id.
func (r *Registry) ArrowCount(id ecs.EntityID) int {
	if rec, ok := r.records[id]; ok {
		return rec.arrows
	}
	return 0
}

func (r *Registry) Len() int { return len(r.records) }
