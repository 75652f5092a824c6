package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID) bool
	Clear()
}

// Store is a generic component store that keeps insertion order.
// Iteration order is the order in which entities were first Set.
// Remove compacts in place and must not be called from inside Each;
// queue the entity with World.MarkForDestruction instead.
type Store[T any] struct {
	ids   []EntityID
	items []*T
	index map[EntityID]int
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		ids:   make([]EntityID, 0, 64),
		items: make([]*T, 0, 64),
		index: make(map[EntityID]int, 64),
	}
}

// Set attaches c to id. A new entity is appended; an existing one keeps its slot.
func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.items[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.items = append(s.items, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

// Remove detaches id and reports whether it had a component here.
func (s *Store[T]) Remove(id EntityID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	copy(s.ids[i:], s.ids[i+1:])
	copy(s.items[i:], s.items[i+1:])
	last := len(s.ids) - 1
	s.items[last] = nil
	s.ids = s.ids[:last]
	s.items = s.items[:last]
	for j := i; j < last; j++ {
		s.index[s.ids[j]] = j
	}
	return true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

func (s *Store[T]) Clear() {
	for i := range s.items {
		s.items[i] = nil
	}
	s.ids = s.ids[:0]
	s.items = s.items[:0]
	clear(s.index)
}

// Each visits components in insertion order.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i, id := range s.ids {
		fn(id, s.items[i])
	}
}
