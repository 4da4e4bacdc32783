package ontology

// Direct children of the universe take a single GlobalName, which is also
// their local name.

type EcosystemStruct struct {
	GlobalName string
}

type SceneStruct struct {
	GlobalName string
	Gravity    float32
	WaterLevel float32
}

type PipelineStruct struct {
	Parent         Ref
	GlobalName     string
	LocalName      string
	VertexShader   string
	FragmentShader string
}

type ComputeTaskStruct struct {
	Parent            Ref
	GlobalName        string
	LocalName         string
	TextureFilename   string
	TextureFileFormat string
}

type MaterialStruct struct {
	Parent            Ref
	Pipeline          Ref
	GlobalName        string
	LocalName         string
	TextureFilename   string
	TextureFileFormat string
}

type SpeciesStruct struct {
	Parent          Ref
	Material        Ref
	GlobalName      string
	LocalName       string
	ModelFilename   string
	ModelFileFormat string
}

type ObjectStruct struct {
	Parent     Ref
	Species    Ref
	Brain      Ref
	GlobalName string
	LocalName  string
	Position   [3]float32
}

type SymbiosisStruct struct {
	Parent          Ref
	Pipeline        Ref
	GlobalName      string
	LocalName       string
	ModelFilename   string
	ModelFileFormat string
}

type HolobiontStruct struct {
	Parent     Ref
	Symbiosis  Ref
	Brain      Ref
	GlobalName string
	LocalName  string
	Position   [3]float32
}

type BiontStruct struct {
	Parent     Ref
	GlobalName string
	LocalName  string
	BiontID    uint32
}

type BrainStruct struct {
	Parent         Ref
	GlobalName     string
	LocalName      string
	CallbackEngine string
}

type CameraStruct struct {
	Parent     Ref
	GlobalName string
	LocalName  string
	Position   [3]float32
}

type Font2DStruct struct {
	GlobalName        string
	TextureFilename   string
	TextureFileFormat string
	FontSize          uint32
}

type Text2DStruct struct {
	Parent     Ref
	GlobalName string
	LocalName  string
	Text       string
}

type ConsoleStruct struct {
	GlobalName string
	Font       Ref
}

// VariableStruct attaches a value to Parent. Activate runs once at creation
// unless SkipActivate is set, and again on every Set.
type VariableStruct struct {
	Parent       Ref
	GlobalName   string
	LocalName    string
	InitialValue string
	Activate     ActivateFunc
	Read         ReadFunc
	SkipActivate bool
}

// Description is the union of every kind's construction fields. Fields a
// kind does not use are ignored.
type Description struct {
	Kind       Kind
	Parent     Ref
	GlobalName string
	LocalName  string

	Pipeline  Ref
	Material  Ref
	Species   Ref
	Brain     Ref
	Symbiosis Ref
	Font      Ref

	Gravity           float32
	WaterLevel        float32
	VertexShader      string
	FragmentShader    string
	TextureFilename   string
	TextureFileFormat string
	ModelFilename     string
	ModelFileFormat   string
	CallbackEngine    string
	Text              string
	Value             string
	Position          [3]float32
	BiontID           uint32
	FontSize          uint32
}
