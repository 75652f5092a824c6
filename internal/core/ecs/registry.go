package ecs

// Registry knows every component store of a World, so destroying an entity
// strips all of its components in one call.
type Registry struct {
	names  []string
	stores []Removable
}

func NewRegistry() *Registry { return &Registry{} }

// Register adds a component store under a diagnostic name.
func (r *Registry) Register(name string, store Removable) {
	r.names = append(r.names, name)
	r.stores = append(r.stores, store)
}

// RemoveAll strips id from every store and returns how many stores held it.
func (r *Registry) RemoveAll(id EntityID) int {
	n := 0
	for _, s := range r.stores {
		if s.Remove(id) {
			n++
		}
	}
	return n
}

// ClearAll empties every registered store.
func (r *Registry) ClearAll() {
	for _, s := range r.stores {
		s.Clear()
	}
}

// Names lists registered stores in registration order.
func (r *Registry) Names() []string { return r.names }
