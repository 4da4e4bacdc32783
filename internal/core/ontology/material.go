package ontology

type Material struct {
	entity
	textureFilename   string
	textureFileFormat string
}

func (f *EntityFactory) CreateMaterial(s MaterialStruct) (*Material, error) {
	return create(f, blueprint{
		kind:       KindMaterial,
		parent:     s.Parent,
		masters:    []Ref{s.Pipeline},
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(m *Material) {
		m.textureFilename = s.TextureFilename
		m.textureFileFormat = s.TextureFileFormat
	})
}

func (m *Material) TextureFilename() string {
	return m.textureFilename
}

func (m *Material) Pipeline() *Pipeline {
	return masterAs[*Pipeline](&m.entity, KindPipeline)
}

func (m *Material) BindToNewPipeline(p *Pipeline) error {
	return BindToNewMaster(m, p)
}

func (m *Material) BindToNewParent(parent Entity) error {
	return BindToNewParent(m, parent)
}

func (m *Material) NumberOfSpecies() int {
	return m.masterModuleFor(KindSpecies).Count()
}

type Species struct {
	entity
	modelFilename   string
	modelFileFormat string
}

func (f *EntityFactory) CreateSpecies(s SpeciesStruct) (*Species, error) {
	return create(f, blueprint{
		kind:       KindSpecies,
		parent:     s.Parent,
		masters:    []Ref{s.Material},
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(sp *Species) {
		sp.modelFilename = s.ModelFilename
		sp.modelFileFormat = s.ModelFileFormat
	})
}

func (s *Species) ModelFilename() string {
	return s.modelFilename
}

func (s *Species) ModelFileFormat() string {
	return s.modelFileFormat
}

func (s *Species) Material() *Material {
	return masterAs[*Material](&s.entity, KindMaterial)
}

func (s *Species) BindToNewMaterial(m *Material) error {
	return BindToNewMaster(s, m)
}

func (s *Species) NumberOfObjects() int {
	return s.masterModuleFor(KindObject).Count()
}

// Object is a placed instance of a species mesh.
type Object struct {
	entity
	position [3]float32
}

func (f *EntityFactory) CreateObject(s ObjectStruct) (*Object, error) {
	return create(f, blueprint{
		kind:       KindObject,
		parent:     s.Parent,
		masters:    []Ref{s.Species, s.Brain},
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(o *Object) { o.position = s.Position })
}

func (o *Object) Position() [3]float32 {
	return o.position
}

func (o *Object) Species() *Species {
	return masterAs[*Species](&o.entity, KindSpecies)
}

func (o *Object) Brain() *Brain {
	return masterAs[*Brain](&o.entity, KindBrain)
}

func (o *Object) BindToNewSpecies(s *Species) error {
	return BindToNewMaster(o, s)
}

func (o *Object) BindToNewBrain(b *Brain) error {
	return BindToNewMaster(o, b)
}

func (o *Object) BindToNewParent(s *Scene) error {
	return BindToNewParent(o, s)
}
