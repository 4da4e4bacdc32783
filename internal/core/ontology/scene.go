package ontology

// Ecosystem holds shared resources that are not tied to any scene.
type Ecosystem struct {
	entity
}

func (f *EntityFactory) CreateEcosystem(s EcosystemStruct) (*Ecosystem, error) {
	return create(f, blueprint{
		kind:       KindEcosystem,
		parent:     To(f.universe),
		globalName: s.GlobalName,
	}, func(*Ecosystem) {})
}

type Scene struct {
	entity
	gravity    float32
	waterLevel float32
}

func (f *EntityFactory) CreateScene(s SceneStruct) (*Scene, error) {
	return create(f, blueprint{
		kind:       KindScene,
		parent:     To(f.universe),
		globalName: s.GlobalName,
	}, func(sc *Scene) {
		sc.gravity = s.Gravity
		sc.waterLevel = s.WaterLevel
	})
}

func (s *Scene) Gravity() float32 {
	return s.gravity
}

func (s *Scene) WaterLevel() float32 {
	return s.waterLevel
}

type Camera struct {
	entity
	position [3]float32
}

func (f *EntityFactory) CreateCamera(s CameraStruct) (*Camera, error) {
	return create(f, blueprint{
		kind:       KindCamera,
		parent:     s.Parent,
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(c *Camera) { c.position = s.Position })
}

func (c *Camera) Position() [3]float32 {
	return c.position
}

func (c *Camera) BindToNewParent(s *Scene) error {
	return BindToNewParent(c, s)
}
