package ontology

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/ontology/internal/core/events/bus"
	"github.com/zeusync/ontology/internal/core/memory"
	"github.com/zeusync/ontology/internal/core/observability/log"
)

type options struct {
	globalName  string
	logger      log.Log
	bus         bus.EventBus
	capacities  map[Kind]uint32
	maxStorages uint32
}

type Option func(*options)

func WithGlobalName(name string) Option {
	return func(o *options) { o.globalName = name }
}

func WithLogger(l log.Log) Option {
	return func(o *options) { o.logger = l }
}

// WithEventBus publishes lifecycle events to b.
func WithEventBus(b bus.EventBus) Option {
	return func(o *options) { o.bus = b }
}

// WithCapacity sets the slots per storage for one kind.
func WithCapacity(k Kind, n uint32) Option {
	return func(o *options) { o.capacities[k] = n }
}

// WithMaxStorages bounds the storages per kind; 0 leaves them unbounded.
func WithMaxStorages(n uint32) Option {
	return func(o *options) { o.maxStorages = n }
}

func (o *options) capacity(k Kind) uint32 {
	if n, ok := o.capacities[k]; ok && n > 0 {
		return n
	}
	return k.DefaultCapacity()
}

// Universe is the root entity and the context every other entity lives in.
// It is not safe for concurrent use.
type Universe struct {
	entity

	id      uuid.UUID
	log     log.Log
	bus     bus.EventBus
	memory  *memory.System
	factory *EntityFactory
}

func NewUniverse(opts ...Option) *Universe {
	o := &options{capacities: make(map[Kind]uint32)}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.NewNop()
	}

	u := &Universe{
		id:     uuid.New(),
		bus:    o.bus,
		memory: memory.NewSystem(),
	}
	u.log = o.logger.With(log.String("component", "ontology"), log.String("universe", u.id.String()))
	u.init(u, u, KindUniverse, memory.Handle{})
	u.factory = &EntityFactory{universe: u}
	u.storeAllocators(o)

	if o.globalName != "" {
		_ = u.SetGlobalName(o.globalName)
	}
	return u
}

func newAllocator[T any](k Kind, o *options) memory.GenericAllocator {
	return memory.NewAllocator[T](k.typeID(), k.String(), o.capacity(k), o.maxStorages)
}

func (u *Universe) storeAllocators(o *options) {
	allocators := []memory.GenericAllocator{
		newAllocator[Ecosystem](KindEcosystem, o),
		newAllocator[Scene](KindScene, o),
		newAllocator[Pipeline](KindPipeline, o),
		newAllocator[ComputeTask](KindComputeTask, o),
		newAllocator[Material](KindMaterial, o),
		newAllocator[Species](KindSpecies, o),
		newAllocator[Object](KindObject, o),
		newAllocator[Symbiosis](KindSymbiosis, o),
		newAllocator[Holobiont](KindHolobiont, o),
		newAllocator[Biont](KindBiont, o),
		newAllocator[Brain](KindBrain, o),
		newAllocator[Camera](KindCamera, o),
		newAllocator[Font2D](KindFont2D, o),
		newAllocator[Text2D](KindText2D, o),
		newAllocator[Console](KindConsole, o),
		newAllocator[Variable](KindVariable, o),
	}
	for _, a := range allocators {
		if err := u.memory.Store(a); err != nil {
			u.log.Error("store allocator", log.Error(err))
		}
	}
}

// ID identifies this universe instance in logs and events.
func (u *Universe) ID() uuid.UUID {
	return u.id
}

func (u *Universe) Factory() *EntityFactory {
	return u.factory
}

func (u *Universe) Memory() *memory.System {
	return u.memory
}

func (u *Universe) Logger() log.Log {
	return u.log
}

func (u *Universe) EventBus() bus.EventBus {
	return u.bus
}

// Resolve maps a live arena handle back to its entity.
func (u *Universe) Resolve(h memory.Handle) (Entity, bool) {
	v, ok := u.memory.Lookup(h)
	if !ok {
		return nil, false
	}
	e, ok := v.(Entity)
	if !ok || e.core().universe != u {
		return nil, false
	}
	return e, true
}

func (u *Universe) checkLive(e Entity) error {
	if isNil(e) {
		return ErrUnresolvedRef
	}
	if e == Entity(u) {
		return nil
	}
	if e.Universe() != u {
		if e.Universe() == nil {
			return ErrStaleHandle
		}
		return ErrForeignEntity
	}
	live, ok := u.Resolve(e.Handle())
	if !ok || live != e {
		return ErrStaleHandle
	}
	return nil
}

// Destroy erases e and its whole subtree. The universe itself and entities
// constructed as non-erasable are refused.
func (u *Universe) Destroy(e Entity) error {
	if isNil(e) {
		return ErrUnresolvedRef
	}
	if e != Entity(u) {
		if err := u.checkLive(e); err != nil {
			return fmt.Errorf("destroy %s: %w", e.Kind(), err)
		}
	}
	if e == Entity(u) || !e.CanBeErased() {
		return fmt.Errorf("destroy %s %q: %w", e.Kind(), e.GlobalName(), ErrNotErasable)
	}
	u.destroy(e)
	return nil
}

// Shutdown destroys every entity, erasable or not.
func (u *Universe) Shutdown() {
	for _, pm := range u.parents {
		for _, c := range pm.children.Snapshot() {
			u.destroy(c.owner)
		}
	}
}

// destroy unwinds children and edges before the slot is released.
func (u *Universe) destroy(e Entity) {
	c := e.core()

	for _, pm := range c.parents {
		for _, child := range pm.children.Snapshot() {
			u.destroy(child.owner)
		}
	}
	for _, mm := range c.masters {
		mm.unbindAll()
	}
	for _, am := range c.apprentices {
		if am.master != nil {
			am.master.unbind(am)
		}
	}

	ev := newEntityEvent(e, nil)
	if c.child != nil && c.child.parent != nil {
		c.child.parent.unbind(c.child)
	}
	if c.globalName != "" {
		u.registry.EraseEntity(c.globalName, e)
	}

	u.log.Debug("entity destroyed", c.logFields()...)
	u.publish(EventEntityDestroyed, ev)

	if err := u.memory.Release(c.handle); err != nil {
		u.log.Error("release entity slot", log.Stringer("handle", c.handle), log.Error(err))
	}
}
