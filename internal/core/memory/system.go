package memory

import "fmt"

// System owns one allocator per registered type.
type System struct {
	allocators map[TypeID]GenericAllocator
}

func NewSystem() *System {
	return &System{allocators: make(map[TypeID]GenericAllocator)}
}

// Store registers an allocator. Registering the same TypeID twice is an error.
func (s *System) Store(a GenericAllocator) error {
	if _, ok := s.allocators[a.TypeID()]; ok {
		return fmt.Errorf("store allocator %s: type %d already registered", a.TypeName(), a.TypeID())
	}
	s.allocators[a.TypeID()] = a
	return nil
}

func (s *System) Has(id TypeID) bool {
	_, ok := s.allocators[id]
	return ok
}

func (s *System) Get(id TypeID) (GenericAllocator, bool) {
	a, ok := s.allocators[id]
	return a, ok
}

// Release frees the slot addressed by h in its type's allocator.
func (s *System) Release(h Handle) error {
	a, ok := s.allocators[h.Type]
	if !ok {
		return &AllocationError{Type: h.Type, Err: ErrUnknownType}
	}
	return a.Release(h)
}

// Lookup resolves a live handle to a pointer to its occupant.
func (s *System) Lookup(h Handle) (any, bool) {
	a, ok := s.allocators[h.Type]
	if !ok {
		return nil, false
	}
	return a.Lookup(h)
}

// Reserve reserves a slot from the allocator registered for id, which must
// have been created for T.
func Reserve[T any](s *System, id TypeID) (*T, Handle, error) {
	a, ok := s.allocators[id]
	if !ok {
		return nil, Handle{}, &AllocationError{Type: id, Err: ErrUnknownType}
	}
	typed, ok := a.(*Allocator[T])
	if !ok {
		return nil, Handle{}, &AllocationError{Type: id, TypeName: a.TypeName(), Err: ErrTypeMismatch}
	}
	return typed.Reserve()
}
