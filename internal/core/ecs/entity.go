package ecs

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool manages entity allocation with generational indices and a free list.
// Generations start at 1 so the zero EntityID never names a live entity.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
	live        int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *EntityPool) Create() EntityID {
	p.live++
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 1)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy invalidates id. It reports false for a stale or unknown handle.
func (p *EntityPool) Destroy(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	if p.generations[idx] != id.Generation() {
		return false // already destroyed (stale reference)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}

// Live returns the number of allocated, not yet destroyed entities.
func (p *EntityPool) Live() int { return p.live }

// Reset invalidates every handle ever issued. Slots are recycled with a
// bumped generation, so ids from before the reset are never Alive again.
func (p *EntityPool) Reset() {
	p.freeList = p.freeList[:0]
	for idx := int(p.nextIndex) - 1; idx >= 0; idx-- {
		p.generations[idx]++
		p.freeList = append(p.freeList, uint32(idx))
	}
	p.live = 0
}
