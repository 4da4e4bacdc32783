package memory

// GenericAllocator is the type-erased view of an Allocator held by a System.
type GenericAllocator interface {
	TypeID() TypeID
	TypeName() string
	Release(h Handle) error
	Lookup(h Handle) (any, bool)
	NumberOfStorages() int
	NumberOfInstances() int
}

var _ GenericAllocator = (*Allocator[struct{}])(nil)

// Allocator chains fixed-capacity storages for one type. A new storage is
// opened when every existing one is full, up to maxStorages (0 means no limit).
type Allocator[T any] struct {
	typeID      TypeID
	typeName    string
	capacity    uint32
	maxStorages uint32
	storages    []*Storage[T]
}

func NewAllocator[T any](typeID TypeID, typeName string, capacity, maxStorages uint32) *Allocator[T] {
	if capacity == 0 {
		capacity = 1
	}
	return &Allocator[T]{
		typeID:      typeID,
		typeName:    typeName,
		capacity:    capacity,
		maxStorages: maxStorages,
	}
}

// Reserve returns a zeroed slot and its handle.
func (a *Allocator[T]) Reserve() (*T, Handle, error) {
	for _, s := range a.storages {
		if ptr, h, ok := s.reserve(); ok {
			return ptr, h, nil
		}
	}

	if a.maxStorages != 0 && uint32(len(a.storages)) >= a.maxStorages {
		return nil, Handle{}, &AllocationError{Type: a.typeID, TypeName: a.typeName, Err: ErrArenaExhausted}
	}

	s := newStorage[T](a.typeID, uint32(len(a.storages)), a.capacity)
	a.storages = append(a.storages, s)
	ptr, h, _ := s.reserve()
	return ptr, h, nil
}

func (a *Allocator[T]) Release(h Handle) error {
	s, err := a.storage(h)
	if err != nil {
		return err
	}
	return s.release(h.Slot, h.Generation)
}

// Get returns the occupant of a live handle.
func (a *Allocator[T]) Get(h Handle) (*T, bool) {
	s, err := a.storage(h)
	if err != nil {
		return nil, false
	}
	return s.get(h.Slot, h.Generation)
}

func (a *Allocator[T]) Lookup(h Handle) (any, bool) {
	ptr, ok := a.Get(h)
	if !ok {
		return nil, false
	}
	return ptr, true
}

func (a *Allocator[T]) storage(h Handle) (*Storage[T], error) {
	if h.Type != a.typeID {
		return nil, ErrTypeMismatch
	}
	if h.Storage >= uint32(len(a.storages)) {
		return nil, ErrStaleHandle
	}
	return a.storages[h.Storage], nil
}

func (a *Allocator[T]) TypeID() TypeID {
	return a.typeID
}

func (a *Allocator[T]) TypeName() string {
	return a.typeName
}

func (a *Allocator[T]) Capacity() uint32 {
	return a.capacity
}

func (a *Allocator[T]) NumberOfStorages() int {
	return len(a.storages)
}

func (a *Allocator[T]) NumberOfInstances() int {
	n := 0
	for _, s := range a.storages {
		n += s.Instances()
	}
	return n
}
