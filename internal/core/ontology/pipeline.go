package ontology

type Pipeline struct {
	entity
	vertexShader   string
	fragmentShader string
}

func (f *EntityFactory) CreatePipeline(s PipelineStruct) (*Pipeline, error) {
	return create(f, blueprint{
		kind:       KindPipeline,
		parent:     s.Parent,
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(p *Pipeline) {
		p.vertexShader = s.VertexShader
		p.fragmentShader = s.FragmentShader
	})
}

func (p *Pipeline) VertexShader() string {
	return p.vertexShader
}

func (p *Pipeline) FragmentShader() string {
	return p.fragmentShader
}

// BindToNewEcosystemParent moves the pipeline into an ecosystem, where it
// becomes usable from any scene.
func (p *Pipeline) BindToNewEcosystemParent(e *Ecosystem) error {
	return BindToNewParent(p, e)
}

// BindToNewSceneParent moves the pipeline into s. Materials and symbioses of
// other scenes stop using it.
func (p *Pipeline) BindToNewSceneParent(s *Scene) error {
	return BindToNewParent(p, s)
}

func (p *Pipeline) NumberOfMaterials() int {
	return p.masterModuleFor(KindMaterial).Count()
}

func (p *Pipeline) NumberOfSymbioses() int {
	return p.masterModuleFor(KindSymbiosis).Count()
}

func (p *Pipeline) NumberOfComputeTasks() int {
	return p.parentModuleFor(KindComputeTask).Count()
}

type ComputeTask struct {
	entity
	textureFilename   string
	textureFileFormat string
}

func (f *EntityFactory) CreateComputeTask(s ComputeTaskStruct) (*ComputeTask, error) {
	return create(f, blueprint{
		kind:       KindComputeTask,
		parent:     s.Parent,
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(c *ComputeTask) {
		c.textureFilename = s.TextureFilename
		c.textureFileFormat = s.TextureFileFormat
	})
}

func (c *ComputeTask) TextureFilename() string {
	return c.textureFilename
}

func (c *ComputeTask) TextureFileFormat() string {
	return c.textureFileFormat
}

func (c *ComputeTask) BindToNewParent(p *Pipeline) error {
	return BindToNewParent(c, p)
}
