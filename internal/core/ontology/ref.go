package ontology

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zeusync/ontology/internal/core/memory"
)

type refKind uint8

const (
	refNone refKind = iota
	refEntity
	refName
	refHandle
)

// Ref names a parent or master at construction time: nothing, a live
// entity, a name path resolved against the registries, or an arena handle.
type Ref struct {
	kind   refKind
	entity Entity
	name   string
	handle memory.Handle
}

func None() Ref {
	return Ref{}
}

func To(e Entity) Ref {
	if isNil(e) {
		return Ref{}
	}
	return Ref{kind: refEntity, entity: e}
}

// Named refers to an entity by global name, or by a path such as
// "scene/object" whose later segments are local names.
func Named(path string) Ref {
	if path == "" {
		return Ref{}
	}
	return Ref{kind: refName, name: path}
}

func ByHandle(h memory.Handle) Ref {
	return Ref{kind: refHandle, handle: h}
}

func (r Ref) IsNone() bool {
	return r.kind == refNone
}

func (r Ref) String() string {
	switch r.kind {
	case refEntity:
		return fmt.Sprintf("%s@%s", r.entity.Kind(), r.entity.Handle())
	case refName:
		return r.name
	case refHandle:
		return r.handle.String()
	default:
		return "none"
	}
}

// resolve returns nil for a none reference.
func (u *Universe) resolve(r Ref) (Entity, error) {
	switch r.kind {
	case refNone:
		return nil, nil
	case refEntity:
		if err := u.checkLive(r.entity); err != nil {
			return nil, err
		}
		return r.entity, nil
	case refName:
		return u.ResolvePath(r.name)
	case refHandle:
		e, ok := u.Resolve(r.handle)
		if !ok {
			return nil, fmt.Errorf("resolve %s: %w", r.handle, ErrStaleHandle)
		}
		return e, nil
	default:
		return nil, ErrUnresolvedRef
	}
}

// ResolvePath looks the first segment up in the universe registry and
// every following segment in the previous entity's registry.
func (u *Universe) ResolvePath(path string) (Entity, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	var cur Entity = u
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("resolve %q: %w", path, ErrUnresolvedRef)
		}
		next, ok := cur.GetEntity(seg)
		if !ok {
			return nil, fmt.Errorf("resolve %q at %q: %w", path, seg, ErrUnresolvedRef)
		}
		cur = next
	}
	return cur, nil
}

func isNil(e Entity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
