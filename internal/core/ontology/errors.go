package ontology

import "errors"

var (
	ErrNameCollision         = errors.New("name already bound in scope")
	ErrLocalityViolation     = errors.New("apprentice and master belong to different scenes")
	ErrUninitializedIdentity = errors.New("child identity is undefined")
	ErrIncompatibleParent    = errors.New("parent cannot own this kind")
	ErrIncompatibleMaster    = errors.New("master cannot use this kind")
	ErrUnresolvedRef         = errors.New("reference does not resolve to an entity")
	ErrMissingParent         = errors.New("entity requires a parent")
	ErrNotErasable           = errors.New("entity cannot be erased")
	ErrNoLocalScope          = errors.New("entity has no local scope")
	ErrStaleHandle           = errors.New("entity handle is stale")
	ErrForeignEntity         = errors.New("entity belongs to another universe")
)
