package ontology

import (
	"fmt"

	"github.com/zeusync/ontology/internal/core/memory"
	"github.com/zeusync/ontology/internal/core/observability/log"
)

// Entity is implemented only by the kinds declared in this package.
type Entity interface {
	Kind() Kind
	Handle() memory.Handle
	Universe() *Universe

	ChildID() int
	GlobalName() string
	LocalName() string
	SetGlobalName(name string) error
	SetLocalName(name string) error
	CanBeErased() bool

	Parent() Entity
	Scene() *Scene
	Registry() *Registry

	HasChild(name string) bool
	GetEntity(name string) (Entity, bool)
	ChildrenOf(kind Kind) []Entity
	NumberOfChildren() int
	NumberOfDescendants() int

	Master(kind Kind) Entity
	Apprentices() []Entity
	NumberOfApprentices() int

	core() *entity
}

// entity carries the identity and edges shared by every kind.
type entity struct {
	self        Entity
	universe    *Universe
	kind        Kind
	handle      memory.Handle
	registry    *Registry
	globalName  string
	localName   string
	canBeErased bool

	child       *ChildModule
	parents     []*ParentModule
	masters     []*MasterModule
	apprentices []*ApprenticeModule
}

// init wires the modules declared for kind. Only the factory and NewUniverse call it.
func (e *entity) init(u *Universe, self Entity, kind Kind, h memory.Handle) {
	info := kind.info()

	e.self = self
	e.universe = u
	e.kind = kind
	e.handle = h
	e.canBeErased = info.erasable
	e.registry = NewRegistry()

	if kind != KindUniverse {
		e.child = &ChildModule{owner: self, childID: UndefinedID}
	}

	e.parents = make([]*ParentModule, 0, len(info.owns))
	for _, k := range info.owns {
		pm := newParentModule(self, k)
		e.parents = append(e.parents, pm)
		e.registry.AddIndexable(k.Plural(), pm)
	}

	e.masters = make([]*MasterModule, 0, len(info.masterOf))
	for _, role := range info.masterOf {
		mm := newMasterModule(self, role)
		e.masters = append(e.masters, mm)
		e.registry.AddIndexable(role.name, mm)
	}

	e.apprentices = make([]*ApprenticeModule, 0, len(info.apprenticeOf))
	for _, role := range info.apprenticeOf {
		e.apprentices = append(e.apprentices, &ApprenticeModule{
			owner:        self,
			role:         role.name,
			masters:      role.masters,
			apprenticeID: UndefinedID,
		})
	}
}

func (e *entity) core() *entity {
	return e
}

func (e *entity) Kind() Kind {
	return e.kind
}

func (e *entity) Handle() memory.Handle {
	return e.handle
}

func (e *entity) Universe() *Universe {
	return e.universe
}

func (e *entity) Registry() *Registry {
	return e.registry
}

func (e *entity) ChildID() int {
	if e.child == nil {
		return UndefinedID
	}
	return e.child.childID
}

func (e *entity) GlobalName() string {
	return e.globalName
}

func (e *entity) LocalName() string {
	return e.localName
}

func (e *entity) CanBeErased() bool {
	return e.canBeErased
}

func (e *entity) Parent() Entity {
	if e.child == nil || e.child.parent == nil {
		return nil
	}
	return e.child.parent.owner
}

// Scene returns the scene this entity belongs to through its parent chain,
// itself for a scene, or nil for entities outside any scene.
func (e *entity) Scene() *Scene {
	var cur Entity = e.self
	for cur != nil {
		if s, ok := cur.(*Scene); ok {
			return s
		}
		cur = cur.Parent()
	}
	return nil
}

// live fails with ErrStaleHandle once e has been destroyed.
func (e *entity) live() error {
	if e.universe == nil {
		return ErrStaleHandle
	}
	return e.universe.checkLive(e.self)
}

// sharesUniverseScope reports whether the local scope is the universe
// registry, in which case the global and local name are one value.
func (e *entity) sharesUniverseScope() bool {
	p := e.Parent()
	return p != nil && p.Kind() == KindUniverse
}

// SetGlobalName replaces the global name. Empty names are ignored.
func (e *entity) SetGlobalName(name string) error {
	if err := e.live(); err != nil {
		return fmt.Errorf("set global name %q: %w", name, err)
	}
	if name == "" || name == e.globalName {
		return nil
	}
	if e.sharesUniverseScope() {
		return e.renameShared(name)
	}

	reg := e.universe.registry
	if reg.IsName(name) {
		return fmt.Errorf("set global name %q on %s: %w", name, e.kind, ErrNameCollision)
	}
	old := e.globalName
	if old != "" {
		reg.EraseEntity(old, e.self)
	}
	e.globalName = name
	reg.Add(name, e.self)
	e.universe.publishRename(e.self, old)
	return nil
}

// SetLocalName replaces the name in the current parent's scope.
func (e *entity) SetLocalName(name string) error {
	if e.kind == KindUniverse {
		return fmt.Errorf("set local name %q: %w", name, ErrNoLocalScope)
	}
	if err := e.live(); err != nil {
		return fmt.Errorf("set local name %q: %w", name, err)
	}
	if name == "" || name == e.localName {
		return nil
	}
	if e.sharesUniverseScope() {
		return e.renameShared(name)
	}

	parent := e.Parent()
	if parent == nil {
		return fmt.Errorf("set local name %q on %s: %w", name, e.kind, ErrNoLocalScope)
	}
	reg := parent.Registry()
	if reg.IsName(name) {
		return fmt.Errorf("set local name %q on %s: %w", name, e.kind, ErrNameCollision)
	}
	old := e.localName
	if old != "" {
		reg.EraseEntity(old, e.self)
	}
	e.localName = name
	reg.Add(name, e.self)
	e.universe.publishRename(e.self, old)
	return nil
}

func (e *entity) renameShared(name string) error {
	reg := e.universe.registry
	if reg.IsName(name) {
		return fmt.Errorf("rename %s to %q: %w", e.kind, name, ErrNameCollision)
	}
	old := e.globalName
	if old != "" {
		reg.EraseEntity(old, e.self)
	}
	e.globalName = name
	e.localName = name
	reg.Add(name, e.self)
	e.universe.publishRename(e.self, old)
	return nil
}

func (e *entity) HasChild(name string) bool {
	return e.registry.Contains(name)
}

func (e *entity) GetEntity(name string) (Entity, bool) {
	return e.registry.Lookup(name)
}

func (e *entity) parentModuleFor(k Kind) *ParentModule {
	for _, pm := range e.parents {
		if pm.kind == k {
			return pm
		}
	}
	return nil
}

func (e *entity) masterModuleFor(k Kind) *MasterModule {
	for _, mm := range e.masters {
		if maskHas(mm.accepts, k) {
			return mm
		}
	}
	return nil
}

func (e *entity) apprenticeModuleFor(masterKind Kind) *ApprenticeModule {
	for _, am := range e.apprentices {
		if am.accepts(masterKind) {
			return am
		}
	}
	return nil
}

func (e *entity) ChildrenOf(k Kind) []Entity {
	if pm := e.parentModuleFor(k); pm != nil {
		return pm.Children()
	}
	return nil
}

func (e *entity) NumberOfChildren() int {
	n := 0
	for _, pm := range e.parents {
		n += pm.Count()
	}
	return n
}

func (e *entity) NumberOfDescendants() int {
	n := 0
	for _, pm := range e.parents {
		for _, c := range pm.children.Snapshot() {
			n += 1 + c.owner.NumberOfDescendants()
		}
	}
	return n
}

// Master returns the master of the given kind this entity is an apprentice of.
func (e *entity) Master(k Kind) Entity {
	if am := e.apprenticeModuleFor(k); am != nil {
		if m := am.Master(); m != nil && m.Kind() == k {
			return m
		}
	}
	return nil
}

func (e *entity) Apprentices() []Entity {
	var out []Entity
	for _, mm := range e.masters {
		out = append(out, mm.Apprentices()...)
	}
	return out
}

func (e *entity) NumberOfApprentices() int {
	n := 0
	for _, mm := range e.masters {
		n += mm.Count()
	}
	return n
}

func (e *entity) logFields() []log.Field {
	return []log.Field{
		log.Stringer("kind", e.kind),
		log.Int("child_id", e.ChildID()),
		log.String("global_name", e.globalName),
		log.String("local_name", e.localName),
	}
}

// visit calls fn for e and every descendant, parents before children.
func visit(e Entity, fn func(Entity)) {
	fn(e)
	for _, pm := range e.core().parents {
		for _, c := range pm.children.Snapshot() {
			visit(c.owner, fn)
		}
	}
}
