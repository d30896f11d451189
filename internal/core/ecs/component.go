package ecs

// Removable is implemented by every component store so the World can drop
// a destroyed entity's data in one pass.
type Removable interface {
	Remove(id EntityID)
}

// Store is a typed map of per-entity components.
type Store[T any] struct {
	data map[EntityID]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[EntityID]*T, 256)}
}

func (s *Store[T]) Set(id EntityID, c *T) { s.data[id] = c }

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) { delete(s.data, id) }

func (s *Store[T]) Len() int { return len(s.data) }

func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

// storeSet is every store attached to a World. Destroying an entity clears it
// from all of them.
type storeSet []Removable

func (s storeSet) removeAll(id EntityID) {
	for _, st := range s {
		st.Remove(id)
	}
}
