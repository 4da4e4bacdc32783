package ontology

type Font2D struct {
	entity
	textureFilename   string
	textureFileFormat string
	fontSize          uint32
}

func (f *EntityFactory) CreateFont2D(s Font2DStruct) (*Font2D, error) {
	return create(f, blueprint{
		kind:       KindFont2D,
		parent:     To(f.universe),
		globalName: s.GlobalName,
	}, func(font *Font2D) {
		font.textureFilename = s.TextureFilename
		font.textureFileFormat = s.TextureFileFormat
		font.fontSize = s.FontSize
	})
}

func (f *Font2D) TextureFilename() string {
	return f.textureFilename
}

func (f *Font2D) FontSize() uint32 {
	return f.fontSize
}

func (f *Font2D) NumberOfTexts() int {
	return f.parentModuleFor(KindText2D).Count()
}

func (f *Font2D) NumberOfConsoles() int {
	return f.masterModuleFor(KindConsole).Count()
}

type Text2D struct {
	entity
	text string
}

func (f *EntityFactory) CreateText2D(s Text2DStruct) (*Text2D, error) {
	return create(f, blueprint{
		kind:       KindText2D,
		parent:     s.Parent,
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(t *Text2D) { t.text = s.Text })
}

func (t *Text2D) Text() string {
	return t.text
}

func (t *Text2D) SetText(text string) {
	t.text = text
}

func (t *Text2D) BindToNewParent(f *Font2D) error {
	return BindToNewParent(t, f)
}

// Console is never erasable; it goes away only with the universe.
type Console struct {
	entity
}

func (f *EntityFactory) CreateConsole(s ConsoleStruct) (*Console, error) {
	return create(f, blueprint{
		kind:       KindConsole,
		parent:     To(f.universe),
		masters:    []Ref{s.Font},
		globalName: s.GlobalName,
	}, func(*Console) {})
}

func (c *Console) Font() *Font2D {
	return masterAs[*Font2D](&c.entity, KindFont2D)
}

func (c *Console) BindToNewFont2D(f *Font2D) error {
	return BindToNewMaster(c, f)
}
