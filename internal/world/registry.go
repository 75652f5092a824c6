package world

import "github.com/reefshot/server/internal/core/ecs"

// DefaultEscapeMargin is how far past the far edge a creature may travel
// before it is pruned.
const DefaultEscapeMargin = 100.0

// Registry owns the live creature and projectile collections.
// Removal is deferred: Kill hides an entity from every later iteration in
// the same tick and Flush compacts the stores at tick end, so no pass ever
// sees an entity twice or dereferences a removed one.
type Registry struct {
	world        *ecs.World
	creatures    *ecs.Store[Creature]
	projectiles  *ecs.Store[Projectile]
	escapeMargin float64
}

func NewRegistry(escapeMargin float64) *Registry {
	r := &Registry{
		world:        ecs.NewWorld(),
		creatures:    ecs.NewStore[Creature](),
		projectiles:  ecs.NewStore[Projectile](),
		escapeMargin: escapeMargin,
	}
	r.world.Registry().Register("creatures", r.creatures)
	r.world.Registry().Register("projectiles", r.projectiles)
	return r
}

func (r *Registry) AddCreature(c *Creature) ecs.EntityID {
	id := r.world.CreateEntity()
	r.creatures.Set(id, c)
	return id
}

func (r *Registry) AddProjectile(p *Projectile) ecs.EntityID {
	id := r.world.CreateEntity()
	r.projectiles.Set(id, p)
	return id
}

// Kill queues id for removal. It reports false if id is unknown or already
// queued.
func (r *Registry) Kill(id ecs.EntityID) bool {
	return r.world.MarkForDestruction(id)
}

// Dead reports whether id has been killed or removed.
func (r *Registry) Dead(id ecs.EntityID) bool {
	return r.world.Doomed(id)
}

func (r *Registry) Creature(id ecs.EntityID) (*Creature, bool) {
	if r.Dead(id) {
		return nil, false
	}
	return r.creatures.Get(id)
}

func (r *Registry) Projectile(id ecs.EntityID) (*Projectile, bool) {
	if r.Dead(id) {
		return nil, false
	}
	return r.projectiles.Get(id)
}

// EachCreature visits live creatures in insertion order.
func (r *Registry) EachCreature(fn func(ecs.EntityID, *Creature)) {
	ecs.EachLive(r.world, r.creatures, fn)
}

// EachProjectile visits live projectiles in insertion order.
func (r *Registry) EachProjectile(fn func(ecs.EntityID, *Projectile)) {
	ecs.EachLive(r.world, r.projectiles, fn)
}

// FirstCreature returns the first live creature accepted by match.
func (r *Registry) FirstCreature(match func(*Creature) bool) (ecs.EntityID, *Creature, bool) {
	return ecs.FindLive(r.world, r.creatures, func(_ ecs.EntityID, c *Creature) bool {
		return match(c)
	})
}

func (r *Registry) CreatureCount() int   { return ecs.CountLive(r.world, r.creatures) }
func (r *Registry) ProjectileCount() int { return ecs.CountLive(r.world, r.projectiles) }

// PruneProjectiles kills projectiles above the top edge and returns them.
func (r *Registry) PruneProjectiles() []ecs.EntityID {
	var out []ecs.EntityID
	r.EachProjectile(func(id ecs.EntityID, p *Projectile) {
		if p.Gone() && r.Kill(id) {
			out = append(out, id)
		}
	})
	return out
}

// Escape records a creature pruned after leaving the field.
type Escape struct {
	ID        ecs.EntityID
	Archetype Archetype
}

// PruneCreatures kills creatures that have escaped past the far edge.
func (r *Registry) PruneCreatures(fieldWidth float64) []Escape {
	var out []Escape
	r.EachCreature(func(id ecs.EntityID, c *Creature) {
		if c.Escaped(fieldWidth, r.escapeMargin) && r.Kill(id) {
			out = append(out, Escape{ID: id, Archetype: c.Archetype})
		}
	})
	return out
}

// Prune removes every out-of-bounds entity and compacts the stores.
func (r *Registry) Prune(fieldWidth float64) (projectiles, creatures int) {
	projectiles = len(r.PruneProjectiles())
	creatures = len(r.PruneCreatures(fieldWidth))
	r.Flush()
	return projectiles, creatures
}

// Flush applies queued removals. stale counts queued handles that were no
// longer alive; it is zero unless an invariant has been broken.
func (r *Registry) Flush() (removed, stale int) {
	return r.world.FlushDestroyQueue()
}

// Clear removes every entity. Outstanding ids become stale.
func (r *Registry) Clear() {
	r.world.Reset()
}
