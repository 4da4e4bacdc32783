package memory

import (
	"errors"
	"fmt"
)

var (
	ErrArenaExhausted = errors.New("arena exhausted")
	ErrUnknownType    = errors.New("no allocator for type")
	ErrStaleHandle    = errors.New("stale handle")
	ErrTypeMismatch   = errors.New("allocator type mismatch")
)

// AllocationError reports a failed reservation for a registered type.
type AllocationError struct {
	Type     TypeID
	TypeName string
	Err      error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocate %s (type %d): %v", e.TypeName, e.Type, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}
