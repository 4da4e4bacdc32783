package memory

import "fmt"

// TypeID selects an allocator inside a System.
type TypeID uint16

// Handle addresses one arena slot. Generation changes every time the slot is
// released, so a handle kept past its occupant's lifetime stops resolving.
type Handle struct {
	Type       TypeID
	Storage    uint32
	Slot       uint32
	Generation uint32
}

// StorageAndSlot packs the storage and slot indices the way they are
// reported to the console.
func (h Handle) StorageAndSlot() uint64 {
	return uint64(h.Storage)<<32 | uint64(h.Slot)
}

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d:%d@%d", h.Type, h.Storage, h.Slot, h.Generation)
}
