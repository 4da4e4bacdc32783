package ontology

type Symbiosis struct {
	entity
	modelFilename   string
	modelFileFormat string
}

func (f *EntityFactory) CreateSymbiosis(s SymbiosisStruct) (*Symbiosis, error) {
	return create(f, blueprint{
		kind:       KindSymbiosis,
		parent:     s.Parent,
		masters:    []Ref{s.Pipeline},
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(sy *Symbiosis) {
		sy.modelFilename = s.ModelFilename
		sy.modelFileFormat = s.ModelFileFormat
	})
}

func (s *Symbiosis) ModelFilename() string {
	return s.modelFilename
}

func (s *Symbiosis) Pipeline() *Pipeline {
	return masterAs[*Pipeline](&s.entity, KindPipeline)
}

func (s *Symbiosis) BindToNewPipeline(p *Pipeline) error {
	return BindToNewMaster(s, p)
}

func (s *Symbiosis) NumberOfHolobionts() int {
	return s.masterModuleFor(KindHolobiont).Count()
}

// Holobiont is a placed instance of a symbiosis, made of bionts.
type Holobiont struct {
	entity
	position [3]float32
}

func (f *EntityFactory) CreateHolobiont(s HolobiontStruct) (*Holobiont, error) {
	return create(f, blueprint{
		kind:       KindHolobiont,
		parent:     s.Parent,
		masters:    []Ref{s.Symbiosis, s.Brain},
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(h *Holobiont) { h.position = s.Position })
}

func (h *Holobiont) Position() [3]float32 {
	return h.position
}

func (h *Holobiont) Symbiosis() *Symbiosis {
	return masterAs[*Symbiosis](&h.entity, KindSymbiosis)
}

func (h *Holobiont) Brain() *Brain {
	return masterAs[*Brain](&h.entity, KindBrain)
}

func (h *Holobiont) BindToNewSymbiosis(s *Symbiosis) error {
	return BindToNewMaster(h, s)
}

func (h *Holobiont) BindToNewBrain(b *Brain) error {
	return BindToNewMaster(h, b)
}

func (h *Holobiont) NumberOfBionts() int {
	return h.parentModuleFor(KindBiont).Count()
}

type Biont struct {
	entity
	biontID uint32
}

func (f *EntityFactory) CreateBiont(s BiontStruct) (*Biont, error) {
	return create(f, blueprint{
		kind:       KindBiont,
		parent:     s.Parent,
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(b *Biont) { b.biontID = s.BiontID })
}

func (b *Biont) BiontID() uint32 {
	return b.biontID
}

// Brain drives the movables bound to it.
type Brain struct {
	entity
	callbackEngine string
}

func (f *EntityFactory) CreateBrain(s BrainStruct) (*Brain, error) {
	return create(f, blueprint{
		kind:       KindBrain,
		parent:     s.Parent,
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(b *Brain) { b.callbackEngine = s.CallbackEngine })
}

func (b *Brain) CallbackEngine() string {
	return b.callbackEngine
}

func (b *Brain) NumberOfMovables() int {
	return b.NumberOfApprentices()
}
