package ecs

// Lifetime is the host's view of how long an entity has been simulated.
// TicksLived only advances while the entity is loaded, so an unchanged value
// between two samples means nobody is simulating it anymore.
type Lifetime struct {
	TicksLived uint32
	Frozen     bool
}

// World owns the entity pool, its component stores, and a deferred
// destruction queue flushed by the cleanup system at the end of each tick.
type World struct {
	pool         *EntityPool
	stores       storeSet
	lifetimes    *Store[Lifetime]
	destroyQueue []EntityID
}

func NewWorld() *World {
	w := &World{
		pool:         NewEntityPool(),
		lifetimes:    NewStore[Lifetime](),
		destroyQueue: make([]EntityID, 0, 64),
	}
	w.stores = append(w.stores, w.lifetimes)
	return w
}

func (w *World) CreateEntity() EntityID {
	id := w.pool.Create()
	w.lifetimes.Set(id, &Lifetime{})
	return id
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Advance moves every loaded entity one tick forward.
func (w *World) Advance() {
	w.lifetimes.Each(func(_ EntityID, l *Lifetime) {
		if !l.Frozen {
			l.TicksLived++
		}
	})
}

// TicksLived reports the liveness sample for id. ok is false once the entity
// has been destroyed.
func (w *World) TicksLived(id EntityID) (ticks uint32, ok bool) {
	if !w.pool.Alive(id) {
		return 0, false
	}
	l, ok := w.lifetimes.Get(id)
	if !ok {
		return 0, false
	}
	return l.TicksLived, true
}

// SetFrozen stops (or resumes) simulation of id, e.g. when its chunk unloads.
func (w *World) SetFrozen(id EntityID, frozen bool) {
	if l, ok := w.lifetimes.Get(id); ok {
		l.Frozen = frozen
	}
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and returns how many were
// actually destroyed (duplicates and stale handles are skipped).
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		w.stores.removeAll(id)
		w.pool.Destroy(id)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
