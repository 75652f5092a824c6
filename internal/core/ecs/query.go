package ecs

// EachLive iterates a store in insertion order, skipping entities already
// queued for destruction in this tick. An entity marked from inside fn is
// skipped by every later EachLive call in the same tick.
func EachLive[T any](w *World, s *Store[T], fn func(EntityID, *T)) {
	for i := 0; i < len(s.ids); i++ {
		id := s.ids[i]
		if w.Doomed(id) {
			continue
		}
		fn(id, s.items[i])
	}
}

// FindLive returns the first live entity in s accepted by match.
func FindLive[T any](w *World, s *Store[T], match func(EntityID, *T) bool) (EntityID, *T, bool) {
	for i, id := range s.ids {
		if w.Doomed(id) {
			continue
		}
		if match(id, s.items[i]) {
			return id, s.items[i], true
		}
	}
	return 0, nil, false
}

// CountLive returns the number of entities in s not queued for destruction.
func CountLive[T any](w *World, s *Store[T]) int {
	n := 0
	for _, id := range s.ids {
		if !w.Doomed(id) {
			n++
		}
	}
	return n
}
