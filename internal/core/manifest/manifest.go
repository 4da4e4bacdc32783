package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/ontology/internal/core/ontology"
	"github.com/zeusync/ontology/pkg/concurrent"
	"github.com/zeusync/ontology/pkg/sequence"
)

// Manifest declares the entities a universe starts with. Entries are built
// in document order; nested children are owned by the enclosing entry.
type Manifest struct {
	Universe UniverseConfig `json:"universe" yaml:"universe"`
	Entities []Entry        `json:"entities" yaml:"entities"`
}

type UniverseConfig struct {
	GlobalName string `json:"global_name,omitempty" yaml:"global_name,omitempty"`
}

// Entry describes one entity. Parent and master references are name paths
// ("scene/object"); Parent is ignored for nested entries.
type Entry struct {
	Kind       string `json:"kind" yaml:"kind"`
	GlobalName string `json:"global_name,omitempty" yaml:"global_name,omitempty"`
	LocalName  string `json:"local_name,omitempty" yaml:"local_name,omitempty"`
	Parent     string `json:"parent,omitempty" yaml:"parent,omitempty"`

	Pipeline  string `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`
	Material  string `json:"material,omitempty" yaml:"material,omitempty"`
	Species   string `json:"species,omitempty" yaml:"species,omitempty"`
	Brain     string `json:"brain,omitempty" yaml:"brain,omitempty"`
	Symbiosis string `json:"symbiosis,omitempty" yaml:"symbiosis,omitempty"`
	Font      string `json:"font,omitempty" yaml:"font,omitempty"`

	Gravity           float32   `json:"gravity,omitempty" yaml:"gravity,omitempty"`
	WaterLevel        float32   `json:"water_level,omitempty" yaml:"water_level,omitempty"`
	VertexShader      string    `json:"vertex_shader,omitempty" yaml:"vertex_shader,omitempty"`
	FragmentShader    string    `json:"fragment_shader,omitempty" yaml:"fragment_shader,omitempty"`
	TextureFilename   string    `json:"texture_filename,omitempty" yaml:"texture_filename,omitempty"`
	TextureFileFormat string    `json:"texture_file_format,omitempty" yaml:"texture_file_format,omitempty"`
	ModelFilename     string    `json:"model_filename,omitempty" yaml:"model_filename,omitempty"`
	ModelFileFormat   string    `json:"model_file_format,omitempty" yaml:"model_file_format,omitempty"`
	CallbackEngine    string    `json:"callback_engine,omitempty" yaml:"callback_engine,omitempty"`
	Text              string    `json:"text,omitempty" yaml:"text,omitempty"`
	Value             string    `json:"value,omitempty" yaml:"value,omitempty"`
	Position          []float32 `json:"position,omitempty" yaml:"position,omitempty"`
	BiontID           uint32    `json:"biont_id,omitempty" yaml:"biont_id,omitempty"`
	FontSize          uint32    `json:"font_size,omitempty" yaml:"font_size,omitempty"`

	Children []Entry `json:"children,omitempty" yaml:"children,omitempty"`
}

var ErrInvalidEntry = errors.New("invalid manifest entry")

// Load decodes a YAML manifest.
func Load(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// LoadFiles decodes every file in parallel and merges them in argument
// order: entities are concatenated and the first universe name wins.
func LoadFiles(paths ...string) (*Manifest, error) {
	parts, err := concurrent.ParallelMap(sequence.From(paths), 4, LoadFile)
	if err != nil {
		return nil, err
	}
	merged := &Manifest{}
	for i, m := range parts {
		if merged.Universe.GlobalName == "" {
			merged.Universe = m.Universe
		} else if m.Universe.GlobalName != "" && m.Universe.GlobalName != merged.Universe.GlobalName {
			return nil, fmt.Errorf("%s: %w: universe named %q, already %q",
				paths[i], ErrInvalidEntry, m.Universe.GlobalName, merged.Universe.GlobalName)
		}
		merged.Entities = append(merged.Entities, m.Entities...)
	}
	return merged, nil
}

// Validate checks kinds, nesting and field shapes without touching a universe.
func (m *Manifest) Validate() error {
	var check func(entries []Entry, parent ontology.Kind, path string) error
	check = func(entries []Entry, parent ontology.Kind, path string) error {
		for i, e := range entries {
			at := fmt.Sprintf("%s[%d]", path, i)
			kind, err := ontology.ParseKind(e.Kind)
			if err != nil {
				return fmt.Errorf("%s: %w: %v", at, ErrInvalidEntry, err)
			}
			if kind == ontology.KindUniverse {
				return fmt.Errorf("%s: %w: universe cannot be declared as an entity", at, ErrInvalidEntry)
			}
			if parent != ontology.KindInvalid && !kind.AcceptsParent(parent) {
				return fmt.Errorf("%s: %w: %s cannot be owned by %s", at, ErrInvalidEntry, kind, parent)
			}
			if len(e.Position) > 3 {
				return fmt.Errorf("%s: %w: position has %d components", at, ErrInvalidEntry, len(e.Position))
			}
			if err := check(e.Children, kind, at+".children"); err != nil {
				return err
			}
		}
		return nil
	}
	return check(m.Entities, ontology.KindInvalid, "entities")
}

func (e Entry) description(kind ontology.Kind, parent ontology.Ref) ontology.Description {
	d := ontology.Description{
		Kind:              kind,
		Parent:            parent,
		GlobalName:        e.GlobalName,
		LocalName:         e.LocalName,
		Pipeline:          ontology.Named(e.Pipeline),
		Material:          ontology.Named(e.Material),
		Species:           ontology.Named(e.Species),
		Brain:             ontology.Named(e.Brain),
		Symbiosis:         ontology.Named(e.Symbiosis),
		Font:              ontology.Named(e.Font),
		Gravity:           e.Gravity,
		WaterLevel:        e.WaterLevel,
		VertexShader:      e.VertexShader,
		FragmentShader:    e.FragmentShader,
		TextureFilename:   e.TextureFilename,
		TextureFileFormat: e.TextureFileFormat,
		ModelFilename:     e.ModelFilename,
		ModelFileFormat:   e.ModelFileFormat,
		CallbackEngine:    e.CallbackEngine,
		Text:              e.Text,
		Value:             e.Value,
		BiontID:           e.BiontID,
		FontSize:          e.FontSize,
	}
	copy(d.Position[:], e.Position)
	return d
}

// Build creates every entry in u and returns them in creation order. It
// stops at the first failing entry; entities built before it are kept.
func (m *Manifest) Build(u *ontology.Universe) ([]ontology.Entity, error) {
	if m.Universe.GlobalName != "" {
		if err := u.SetGlobalName(m.Universe.GlobalName); err != nil {
			return nil, fmt.Errorf("universe: %w", err)
		}
	}

	var built []ontology.Entity
	var build func(entries []Entry, parent ontology.Entity, path string) error
	build = func(entries []Entry, parent ontology.Entity, path string) error {
		for i, e := range entries {
			at := fmt.Sprintf("%s[%d]", path, i)
			kind, err := ontology.ParseKind(e.Kind)
			if err != nil {
				return fmt.Errorf("%s: %w: %v", at, ErrInvalidEntry, err)
			}

			ref := ontology.Named(e.Parent)
			if parent != nil {
				ref = ontology.To(parent)
			}
			entity, err := u.Factory().Create(e.description(kind, ref))
			if err != nil {
				return fmt.Errorf("%s (%s %q): %w", at, kind, e.name(), err)
			}
			built = append(built, entity)

			if err := build(e.Children, entity, at+".children"); err != nil {
				return err
			}
		}
		return nil
	}

	if err := build(m.Entities, nil, "entities"); err != nil {
		return built, err
	}
	return built, nil
}

func (e Entry) name() string {
	if e.GlobalName != "" {
		return e.GlobalName
	}
	return e.LocalName
}
