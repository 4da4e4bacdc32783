package memory

import "github.com/zeusync/ontology/pkg/sequence"

// Storage is a fixed-capacity table of slots. Every reservation gets a fresh
// occupant, so a pointer kept past Release never aliases the next occupant
// of the same slot.
type Storage[T any] struct {
	id          uint32
	typeID      TypeID
	slots       []*T
	generations []uint32
	occupied    []bool
	free        *sequence.PriorityQueue[uint32]
	instances   uint32
}

func newStorage[T any](typeID TypeID, id, capacity uint32) *Storage[T] {
	return &Storage[T]{
		id:          id,
		typeID:      typeID,
		slots:       make([]*T, capacity),
		generations: make([]uint32, capacity),
		occupied:    make([]bool, capacity),
		free:        sequence.NewPriorityQueue[uint32](),
	}
}

// reserve hands out the highest released slot, or the next untouched one.
func (s *Storage[T]) reserve() (*T, Handle, bool) {
	if s.instances >= uint32(len(s.slots)) {
		return nil, Handle{}, false
	}

	index, ok := s.free.Dequeue()
	if !ok {
		index = s.instances
	}

	s.slots[index] = new(T)
	s.occupied[index] = true
	s.instances++
	return s.slots[index], s.handle(index), true
}

func (s *Storage[T]) release(slot, generation uint32) error {
	if !s.live(slot, generation) {
		return ErrStaleHandle
	}

	s.slots[slot] = nil
	s.occupied[slot] = false
	s.generations[slot]++
	s.instances--
	s.free.Enqueue(slot, int(slot))
	return nil
}

func (s *Storage[T]) get(slot, generation uint32) (*T, bool) {
	if !s.live(slot, generation) {
		return nil, false
	}
	return s.slots[slot], true
}

func (s *Storage[T]) live(slot, generation uint32) bool {
	return slot < uint32(len(s.slots)) && s.occupied[slot] && s.generations[slot] == generation
}

func (s *Storage[T]) handle(slot uint32) Handle {
	return Handle{Type: s.typeID, Storage: s.id, Slot: slot, Generation: s.generations[slot]}
}

func (s *Storage[T]) ID() uint32 {
	return s.id
}

func (s *Storage[T]) Capacity() int {
	return len(s.slots)
}

func (s *Storage[T]) Instances() int {
	return int(s.instances)
}
