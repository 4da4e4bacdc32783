package ontology

import (
	"fmt"

	"github.com/zeusync/ontology/internal/core/observability/log"
)

// BindToNewParent moves child under newParent. Rebinding onto the current
// parent succeeds without changes. On a local name collision in the new
// scope nothing changes. Apprentice edges that would cross scenes after the
// move are dropped before the child is relocated.
func BindToNewParent(child, newParent Entity) error {
	if isNil(child) || isNil(newParent) {
		return ErrUnresolvedRef
	}
	c := child.core()
	if err := c.live(); err != nil {
		return fmt.Errorf("rebind %s: %w", c.kind, err)
	}
	u := c.universe
	if err := u.checkLive(newParent); err != nil {
		return fmt.Errorf("rebind %s under %s: %w", c.kind, newParent.Kind(), err)
	}
	if c.child == nil {
		return fmt.Errorf("rebind %s: %w", c.kind, ErrIncompatibleParent)
	}

	pm := newParent.core().parentModuleFor(c.kind)
	if pm == nil || !c.kind.AcceptsParent(newParent.Kind()) {
		return fmt.Errorf("rebind %s under %s: %w", c.kind, newParent.Kind(), ErrIncompatibleParent)
	}
	if c.child.parent == pm {
		return nil
	}
	if c.child.childID == UndefinedID || c.child.parent == nil {
		u.log.Error("rebind child", append(c.logFields(), log.Error(ErrUninitializedIdentity))...)
		return ErrUninitializedIdentity
	}
	for anc := newParent; anc != nil; anc = anc.Parent() {
		if anc == child {
			return fmt.Errorf("rebind %s under its own descendant: %w", c.kind, ErrIncompatibleParent)
		}
	}

	if name := c.localName; name != "" && pm.registry().IsName(name) {
		u.log.Warn("rebind rejected", append(c.logFields(),
			log.Stringer("new_parent_kind", newParent.Kind()),
			log.Error(ErrNameCollision))...)
		return fmt.Errorf("rebind %s %q under %s: %w", c.kind, name, newParent.Kind(), ErrNameCollision)
	}

	oldParent := c.Parent()
	enforceLocality(child, newParent.Scene())

	c.child.parent.unbind(c.child)
	pm.bind(c.child)

	u.log.Debug("entity rebound", append(c.logFields(), log.Stringer("new_parent_kind", newParent.Kind()))...)
	u.publishEdge(EventEntityRebound, child, oldParent)
	return nil
}

// enforceLocality drops every apprentice edge touching the subtree rooted at
// moved that would join two distinct scenes once the subtree lives in newScene.
func enforceLocality(moved Entity, newScene *Scene) {
	var subtree []Entity
	inSubtree := make(map[Entity]struct{})
	visit(moved, func(e Entity) {
		subtree = append(subtree, e)
		inSubtree[e] = struct{}{}
	})

	for _, e := range subtree {
		c := e.core()

		if newScene != nil {
			for _, mm := range c.masters {
				mm.unbindWhere(func(a *ApprenticeModule) bool {
					if _, ok := inSubtree[a.owner]; ok {
						return false
					}
					return a.owner.Scene() != newScene
				})
			}
		}

		for _, am := range c.apprentices {
			if am.master == nil {
				continue
			}
			master := am.master.owner
			if _, ok := inSubtree[master]; ok {
				continue
			}
			if ms := master.Scene(); ms != nil && ms != newScene {
				am.master.unbind(am)
				c.universe.publishEdge(EventApprenticeUnbound, e, master)
			}
		}
	}
}

// BindToNewMaster points the apprentice edge that accepts master's kind at
// master. A master in a specific scene other than the apprentice's is
// rejected and the existing edge is kept.
func BindToNewMaster(apprentice, master Entity) error {
	if isNil(apprentice) || isNil(master) {
		return ErrUnresolvedRef
	}
	a := apprentice.core()
	if err := a.live(); err != nil {
		return fmt.Errorf("bind %s to master: %w", a.kind, err)
	}
	if err := a.universe.checkLive(master); err != nil {
		return fmt.Errorf("bind %s to master %s: %w", a.kind, master.Kind(), err)
	}
	am := a.apprenticeModuleFor(master.Kind())
	mm := master.core().masterModuleFor(a.kind)
	if am == nil || mm == nil {
		return fmt.Errorf("bind %s to master %s: %w", a.kind, master.Kind(), ErrIncompatibleMaster)
	}
	return rebindApprentice(am, mm)
}

// UnbindMaster drops the edge from apprentice to its master of kind masterKind.
func UnbindMaster(apprentice Entity, masterKind Kind) error {
	if isNil(apprentice) {
		return ErrUnresolvedRef
	}
	a := apprentice.core()
	if err := a.live(); err != nil {
		return fmt.Errorf("unbind %s from %s: %w", a.kind, masterKind, err)
	}
	am := a.apprenticeModuleFor(masterKind)
	if am == nil {
		return fmt.Errorf("unbind %s from %s: %w", a.kind, masterKind, ErrIncompatibleMaster)
	}
	if am.master == nil {
		return nil
	}
	master := am.master.owner
	am.master.unbind(am)
	a.universe.publishEdge(EventApprenticeUnbound, apprentice, master)
	return nil
}

func rebindApprentice(am *ApprenticeModule, mm *MasterModule) error {
	if am.master == mm {
		return nil
	}
	u := am.owner.core().universe
	if err := checkLocality(am.owner.Scene(), mm.owner); err != nil {
		u.log.Warn("apprentice rebind rejected", append(am.owner.core().logFields(),
			log.String("role", am.role),
			log.Error(err))...)
		return fmt.Errorf("bind %s to %s: %w", am.owner.Kind(), mm.owner.Kind(), err)
	}

	if am.master != nil {
		am.master.unbind(am)
	}
	mm.bind(am)
	u.publishEdge(EventApprenticeBound, am.owner, mm.owner)
	return nil
}

// checkLocality enforces that a master is either scene-agnostic or in the apprentice's scene.
func checkLocality(apprenticeScene *Scene, master Entity) error {
	if ms := master.Scene(); ms != nil && ms != apprenticeScene {
		return ErrLocalityViolation
	}
	return nil
}
