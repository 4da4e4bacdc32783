package ontology

import (
	"github.com/TheBitDrifter/mask"

	"github.com/zeusync/ontology/internal/core/observability/log"
	"github.com/zeusync/ontology/pkg/sequence"
)

// UndefinedID is the childID and apprenticeID of an unbound edge.
const UndefinedID = -1

// ChildModule is the owning edge from an entity to its parent.
type ChildModule struct {
	owner   Entity
	parent  *ParentModule
	childID int
}

func (c *ChildModule) ChildID() int {
	return c.childID
}

// ParentModule holds the children of one kind owned by an entity.
type ParentModule struct {
	owner    Entity
	kind     Kind
	children *sequence.SlotVector[ChildModule]
}

var _ Indexable = (*ParentModule)(nil)

func newParentModule(owner Entity, kind Kind) *ParentModule {
	return &ParentModule{
		owner:    owner,
		kind:     kind,
		children: sequence.NewSlotVector[ChildModule](),
	}
}

func (p *ParentModule) registry() *Registry {
	return p.owner.core().registry
}

func (p *ParentModule) logger() log.Log {
	return p.owner.core().universe.log
}

// bind gives c the next reusable childID and registers its local name.
func (p *ParentModule) bind(c *ChildModule) {
	id := p.children.Acquire()
	c.childID = id
	c.parent = p
	p.children.Set(id, c)

	if name := c.owner.LocalName(); name != "" {
		p.registry().Add(name, c.owner)
	}
}

// unbind detaches c. An undefined or foreign childID is logged and ignored.
func (p *ParentModule) unbind(c *ChildModule) {
	if c.childID == UndefinedID {
		p.logger().Error("unbind child",
			log.Error(ErrUninitializedIdentity),
			log.Stringer("parent_kind", p.owner.Kind()),
			log.Stringer("child_kind", p.kind))
		return
	}
	if p.children.Get(c.childID) != c {
		p.logger().Error("unbind child: childID not held by this parent",
			log.Int("child_id", c.childID),
			log.Int("len", p.children.Len()),
			log.Stringer("child_kind", p.kind))
		return
	}

	if name := c.owner.LocalName(); name != "" {
		p.registry().EraseEntity(name, c.owner)
	}
	p.children.Release(c.childID)
	c.childID = UndefinedID
	c.parent = nil
}

func (p *ParentModule) Kind() Kind {
	return p.kind
}

// Len is the slot vector length including holes.
func (p *ParentModule) Len() int {
	return p.children.Len()
}

func (p *ParentModule) Count() int {
	return p.children.Count()
}

func (p *ParentModule) EntityAt(i int) Entity {
	if c := p.children.Get(i); c != nil {
		return c.owner
	}
	return nil
}

// Children returns the live children in childID order.
func (p *ParentModule) Children() []Entity {
	return sequence.ToArray(p.children.Live(), func(c *ChildModule) Entity { return c.owner })
}

// ApprenticeModule is the non-owning edge from an entity to a master.
type ApprenticeModule struct {
	owner        Entity
	role         string
	masters      mask.Mask
	master       *MasterModule
	apprenticeID int
}

func (a *ApprenticeModule) Role() string {
	return a.role
}

func (a *ApprenticeModule) ApprenticeID() int {
	return a.apprenticeID
}

// Master returns the entity this edge points at, or nil.
func (a *ApprenticeModule) Master() Entity {
	if a.master == nil {
		return nil
	}
	return a.master.owner
}

func (a *ApprenticeModule) accepts(k Kind) bool {
	return maskHas(a.masters, k)
}

// MasterModule holds the apprentices using an entity.
type MasterModule struct {
	owner       Entity
	name        string
	accepts     mask.Mask
	apprentices *sequence.SlotVector[ApprenticeModule]
}

var _ Indexable = (*MasterModule)(nil)

func newMasterModule(owner Entity, role masterRole) *MasterModule {
	return &MasterModule{
		owner:       owner,
		name:        role.name,
		accepts:     role.apprentices,
		apprentices: sequence.NewSlotVector[ApprenticeModule](),
	}
}

func (m *MasterModule) bind(a *ApprenticeModule) {
	id := m.apprentices.Acquire()
	a.apprenticeID = id
	a.master = m
	m.apprentices.Set(id, a)
}

func (m *MasterModule) unbind(a *ApprenticeModule) {
	if a.apprenticeID == UndefinedID || m.apprentices.Get(a.apprenticeID) != a {
		m.owner.core().universe.log.Error("unbind apprentice",
			log.Error(ErrUninitializedIdentity),
			log.String("role", a.role),
			log.Int("apprentice_id", a.apprenticeID))
		return
	}
	m.apprentices.Release(a.apprenticeID)
	a.apprenticeID = UndefinedID
	a.master = nil
}

// unbindWhere force-unbinds every apprentice matching pred and reports how many were dropped.
func (m *MasterModule) unbindWhere(pred func(*ApprenticeModule) bool) int {
	n := 0
	for _, a := range m.apprentices.Snapshot() {
		if pred(a) {
			m.unbind(a)
			m.owner.core().universe.publishEdge(EventApprenticeUnbound, a.owner, m.owner)
			n++
		}
	}
	return n
}

func (m *MasterModule) unbindAll() int {
	return m.unbindWhere(func(*ApprenticeModule) bool { return true })
}

func (m *MasterModule) Name() string {
	return m.name
}

func (m *MasterModule) Len() int {
	return m.apprentices.Len()
}

func (m *MasterModule) Count() int {
	return m.apprentices.Count()
}

func (m *MasterModule) EntityAt(i int) Entity {
	if a := m.apprentices.Get(i); a != nil {
		return a.owner
	}
	return nil
}

// Apprentices returns the live apprentices in apprenticeID order.
func (m *MasterModule) Apprentices() []Entity {
	return sequence.ToArray(m.apprentices.Live(), func(a *ApprenticeModule) Entity { return a.owner })
}
