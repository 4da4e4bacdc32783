package ontology

import (
	"github.com/zeusync/ontology/internal/core/events/bus"
	"github.com/zeusync/ontology/internal/core/memory"
	"github.com/zeusync/ontology/internal/core/observability/log"
)

const (
	EventEntityCreated     = "entity.created"
	EventEntityDestroyed   = "entity.destroyed"
	EventEntityRebound     = "entity.rebound"
	EventEntityRenamed     = "entity.renamed"
	EventApprenticeBound   = "apprentice.bound"
	EventApprenticeUnbound = "apprentice.unbound"
)

// EntityEvent is the payload of every lifecycle event. Related is the old
// parent for rebinds, the master for apprentice events and the previous
// name for renames.
type EntityEvent struct {
	Kind        Kind
	Handle      memory.Handle
	ChildID     int
	GlobalName  string
	LocalName   string
	RelatedKind Kind
	RelatedName string
}

func newEntityEvent(e, related Entity) EntityEvent {
	ev := EntityEvent{
		Kind:       e.Kind(),
		Handle:     e.Handle(),
		ChildID:    e.ChildID(),
		GlobalName: e.GlobalName(),
		LocalName:  e.LocalName(),
	}
	if !isNil(related) {
		ev.RelatedKind = related.Kind()
		ev.RelatedName = related.GlobalName()
		if ev.RelatedName == "" {
			ev.RelatedName = related.LocalName()
		}
	}
	return ev
}

func (u *Universe) publish(typ string, ev EntityEvent) {
	if u.bus == nil {
		return
	}
	src := "universe/" + u.id.String()
	if err := u.bus.Publish(bus.NewEvent(typ, src, ev, 0, nil)); err != nil {
		u.log.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}

func (u *Universe) publishEdge(typ string, e, related Entity) {
	u.publish(typ, newEntityEvent(e, related))
}

// publishRename reports replaced names only; first-time naming is part of creation.
func (u *Universe) publishRename(e Entity, old string) {
	if old == "" {
		return
	}
	ev := newEntityEvent(e, nil)
	ev.RelatedName = old
	u.publish(EventEntityRenamed, ev)
}
