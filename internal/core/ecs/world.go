package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed by CleanupSystem each tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	doomed       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
		doomed:       make(map[EntityID]struct{}, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. It reports
// false when the entity is not alive or is already queued, so each entity
// is removed at most once per tick.
func (w *World) MarkForDestruction(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	if _, ok := w.doomed[id]; ok {
		return false
	}
	w.doomed[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
	return true
}

// Doomed reports whether id is queued for destruction or no longer alive.
func (w *World) Doomed(id EntityID) bool {
	if _, ok := w.doomed[id]; ok {
		return true
	}
	return !w.pool.Alive(id)
}

// Pending returns the number of entities waiting in the destroy queue.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick. It returns the number of
// entities destroyed and the number of queued handles that were already
// stale (always zero while the queue is only fed by MarkForDestruction).
func (w *World) FlushDestroyQueue() (destroyed, stale int) {
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		if w.pool.Destroy(id) {
			destroyed++
		} else {
			stale++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.doomed)
	return destroyed, stale
}

// Reset destroys every live entity and empties all registered stores.
// Outstanding handles become stale.
func (w *World) Reset() {
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.doomed)
	w.registry.ClearAll()
	w.pool.Reset()
}
