package ontology

import (
	"fmt"

	"github.com/zeusync/ontology/internal/core/memory"
	"github.com/zeusync/ontology/internal/core/observability/log"
)

// EntityFactory is the only way to construct entities. Each Create method
// resolves the parent and masters, reserves an arena slot, binds the new
// entity and applies its names. On failure it returns nil and nothing is bound.
type EntityFactory struct {
	universe *Universe
}

type blueprint struct {
	kind       Kind
	parent     Ref
	masters    []Ref
	globalName string
	localName  string
}

type entityPtr[T any] interface {
	*T
	Entity
}

func create[T any, P entityPtr[T]](f *EntityFactory, bp blueprint, fill func(P)) (P, error) {
	u := f.universe
	fail := func(err error) (P, error) {
		u.log.Warn("create entity failed",
			log.Stringer("kind", bp.kind),
			log.Stringer("parent", bp.parent),
			log.String("global_name", bp.globalName),
			log.Error(err))
		return nil, fmt.Errorf("create %s: %w", bp.kind, err)
	}

	parent, err := u.resolve(bp.parent)
	if err != nil {
		return fail(err)
	}
	if parent == nil {
		return fail(ErrMissingParent)
	}
	pm := parent.core().parentModuleFor(bp.kind)
	if pm == nil || !bp.kind.AcceptsParent(parent.Kind()) {
		return fail(fmt.Errorf("%s under %s: %w", bp.kind, parent.Kind(), ErrIncompatibleParent))
	}

	scene := parent.Scene()
	roles := bp.kind.info().apprenticeOf
	masters := make([]*MasterModule, len(roles))
	for i, ref := range bp.masters {
		if i >= len(roles) {
			break
		}
		m, err := u.resolve(ref)
		if err != nil {
			return fail(fmt.Errorf("%s master: %w", roles[i].name, err))
		}
		if m == nil {
			continue
		}
		mm := m.core().masterModuleFor(bp.kind)
		if mm == nil || !maskHas(roles[i].masters, m.Kind()) {
			return fail(fmt.Errorf("%s master %s: %w", roles[i].name, m.Kind(), ErrIncompatibleMaster))
		}
		if err := checkLocality(scene, m); err != nil {
			return fail(fmt.Errorf("%s master %s: %w", roles[i].name, m.Kind(), err))
		}
		masters[i] = mm
	}

	ptr, h, err := memory.Reserve[T](u.memory, bp.kind.typeID())
	if err != nil {
		return fail(err)
	}
	p := P(ptr)
	c := p.core()
	c.init(u, p, bp.kind, h)
	if fill != nil {
		fill(p)
	}

	pm.bind(c.child)
	for i, mm := range masters {
		if mm != nil {
			mm.bind(c.apprentices[i])
		}
	}
	f.applyNames(p, bp)

	u.log.Debug("entity created", c.logFields()...)
	u.publishEdge(EventEntityCreated, p, parent)
	return p, nil
}

// applyNames keeps the entity when a name is taken; it just stays unnamed in that scope.
func (f *EntityFactory) applyNames(e Entity, bp blueprint) {
	if err := e.SetGlobalName(bp.globalName); err != nil {
		f.universe.log.Warn("global name not applied", log.Stringer("kind", bp.kind), log.Error(err))
	}
	if e.core().sharesUniverseScope() && bp.globalName != "" {
		return
	}
	if err := e.SetLocalName(bp.localName); err != nil {
		f.universe.log.Warn("local name not applied", log.Stringer("kind", bp.kind), log.Error(err))
	}
}

// masterAs returns e's master of kind k as P, or the zero P.
func masterAs[P Entity](e *entity, k Kind) P {
	var zero P
	m := e.Master(k)
	if m == nil {
		return zero
	}
	p, ok := m.(P)
	if !ok {
		return zero
	}
	return p
}

// Create builds any kind from a generic description. It backs declarative
// loaders that do not know the concrete struct types.
func (f *EntityFactory) Create(d Description) (Entity, error) {
	switch d.Kind {
	case KindEcosystem:
		return entityOrNil(f.CreateEcosystem(EcosystemStruct{GlobalName: d.GlobalName}))
	case KindScene:
		return entityOrNil(f.CreateScene(SceneStruct{
			GlobalName: d.GlobalName,
			Gravity:    d.Gravity,
			WaterLevel: d.WaterLevel,
		}))
	case KindPipeline:
		return entityOrNil(f.CreatePipeline(PipelineStruct{
			Parent:         d.Parent,
			GlobalName:     d.GlobalName,
			LocalName:      d.LocalName,
			VertexShader:   d.VertexShader,
			FragmentShader: d.FragmentShader,
		}))
	case KindComputeTask:
		return entityOrNil(f.CreateComputeTask(ComputeTaskStruct{
			Parent:            d.Parent,
			GlobalName:        d.GlobalName,
			LocalName:         d.LocalName,
			TextureFilename:   d.TextureFilename,
			TextureFileFormat: d.TextureFileFormat,
		}))
	case KindMaterial:
		return entityOrNil(f.CreateMaterial(MaterialStruct{
			Parent:            d.Parent,
			Pipeline:          d.Pipeline,
			GlobalName:        d.GlobalName,
			LocalName:         d.LocalName,
			TextureFilename:   d.TextureFilename,
			TextureFileFormat: d.TextureFileFormat,
		}))
	case KindSpecies:
		return entityOrNil(f.CreateSpecies(SpeciesStruct{
			Parent:          d.Parent,
			Material:        d.Material,
			GlobalName:      d.GlobalName,
			LocalName:       d.LocalName,
			ModelFilename:   d.ModelFilename,
			ModelFileFormat: d.ModelFileFormat,
		}))
	case KindObject:
		return entityOrNil(f.CreateObject(ObjectStruct{
			Parent:     d.Parent,
			Species:    d.Species,
			Brain:      d.Brain,
			GlobalName: d.GlobalName,
			LocalName:  d.LocalName,
			Position:   d.Position,
		}))
	case KindSymbiosis:
		return entityOrNil(f.CreateSymbiosis(SymbiosisStruct{
			Parent:          d.Parent,
			Pipeline:        d.Pipeline,
			GlobalName:      d.GlobalName,
			LocalName:       d.LocalName,
			ModelFilename:   d.ModelFilename,
			ModelFileFormat: d.ModelFileFormat,
		}))
	case KindHolobiont:
		return entityOrNil(f.CreateHolobiont(HolobiontStruct{
			Parent:     d.Parent,
			Symbiosis:  d.Symbiosis,
			Brain:      d.Brain,
			GlobalName: d.GlobalName,
			LocalName:  d.LocalName,
			Position:   d.Position,
		}))
	case KindBiont:
		return entityOrNil(f.CreateBiont(BiontStruct{
			Parent:     d.Parent,
			GlobalName: d.GlobalName,
			LocalName:  d.LocalName,
			BiontID:    d.BiontID,
		}))
	case KindBrain:
		return entityOrNil(f.CreateBrain(BrainStruct{
			Parent:         d.Parent,
			GlobalName:     d.GlobalName,
			LocalName:      d.LocalName,
			CallbackEngine: d.CallbackEngine,
		}))
	case KindCamera:
		return entityOrNil(f.CreateCamera(CameraStruct{
			Parent:     d.Parent,
			GlobalName: d.GlobalName,
			LocalName:  d.LocalName,
			Position:   d.Position,
		}))
	case KindFont2D:
		return entityOrNil(f.CreateFont2D(Font2DStruct{
			GlobalName:        d.GlobalName,
			TextureFilename:   d.TextureFilename,
			TextureFileFormat: d.TextureFileFormat,
			FontSize:          d.FontSize,
		}))
	case KindText2D:
		return entityOrNil(f.CreateText2D(Text2DStruct{
			Parent:     d.Parent,
			GlobalName: d.GlobalName,
			LocalName:  d.LocalName,
			Text:       d.Text,
		}))
	case KindConsole:
		return entityOrNil(f.CreateConsole(ConsoleStruct{
			GlobalName: d.GlobalName,
			Font:       d.Font,
		}))
	case KindVariable:
		return entityOrNil(f.CreateVariable(VariableStruct{
			Parent:       d.Parent,
			GlobalName:   d.GlobalName,
			LocalName:    d.LocalName,
			InitialValue: d.Value,
		}))
	default:
		return nil, fmt.Errorf("create %s: %w", d.Kind, ErrIncompatibleParent)
	}
}

// entityOrNil keeps a typed nil pointer from turning into a non-nil Entity.
func entityOrNil[P Entity](p P, err error) (Entity, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
