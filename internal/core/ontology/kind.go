package ontology

import (
	"fmt"

	"github.com/TheBitDrifter/mask"

	"github.com/zeusync/ontology/internal/core/memory"
)

// Kind is the closed set of entity types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUniverse
	KindEcosystem
	KindScene
	KindPipeline
	KindComputeTask
	KindMaterial
	KindSpecies
	KindObject
	KindSymbiosis
	KindHolobiont
	KindBiont
	KindBrain
	KindCamera
	KindFont2D
	KindText2D
	KindConsole
	KindVariable

	kindCount
)

type masterRole struct {
	name        string
	apprentices mask.Mask
}

type apprenticeRole struct {
	name    string
	masters mask.Mask
}

type kindInfo struct {
	name         string
	plural       string
	parents      mask.Mask
	owns         []Kind
	masterOf     []masterRole
	apprenticeOf []apprenticeRole
	erasable     bool
	capacity     uint32
}

var kinds = [kindCount]kindInfo{
	KindInvalid: {name: "invalid", plural: "invalid"},
	KindUniverse: {
		name: "universe", plural: "universes",
		owns:     []Kind{KindEcosystem, KindScene, KindFont2D, KindConsole},
		capacity: 1,
	},
	KindEcosystem: {
		name: "ecosystem", plural: "ecosystems",
		parents:  kindMask(KindUniverse),
		owns:     []Kind{KindPipeline, KindMaterial, KindSpecies, KindSymbiosis},
		erasable: true, capacity: 16,
	},
	KindScene: {
		name: "scene", plural: "scenes",
		parents: kindMask(KindUniverse),
		owns: []Kind{
			KindPipeline, KindMaterial, KindSpecies, KindSymbiosis,
			KindObject, KindHolobiont, KindBrain, KindCamera,
		},
		erasable: true, capacity: 256,
	},
	KindPipeline: {
		name: "pipeline", plural: "pipelines",
		parents: kindMask(KindEcosystem, KindScene),
		owns:    []Kind{KindComputeTask},
		masterOf: []masterRole{
			{name: "material_apprentices", apprentices: kindMask(KindMaterial)},
			{name: "symbiosis_apprentices", apprentices: kindMask(KindSymbiosis)},
		},
		erasable: true, capacity: 256,
	},
	KindComputeTask: {
		name: "compute_task", plural: "compute_tasks",
		parents:  kindMask(KindPipeline),
		erasable: true, capacity: 256,
	},
	KindMaterial: {
		name: "material", plural: "materials",
		parents:      kindMask(KindEcosystem, KindScene),
		masterOf:     []masterRole{{name: "species_apprentices", apprentices: kindMask(KindSpecies)}},
		apprenticeOf: []apprenticeRole{{name: "pipeline", masters: kindMask(KindPipeline)}},
		erasable:     true, capacity: 256,
	},
	KindSpecies: {
		name: "species", plural: "species",
		parents:      kindMask(KindEcosystem, KindScene),
		masterOf:     []masterRole{{name: "object_apprentices", apprentices: kindMask(KindObject)}},
		apprenticeOf: []apprenticeRole{{name: "material", masters: kindMask(KindMaterial)}},
		erasable:     true, capacity: 256,
	},
	KindObject: {
		name: "object", plural: "objects",
		parents: kindMask(KindScene),
		apprenticeOf: []apprenticeRole{
			{name: "mesh", masters: kindMask(KindSpecies)},
			{name: "brain", masters: kindMask(KindBrain)},
		},
		erasable: true, capacity: 256,
	},
	KindSymbiosis: {
		name: "symbiosis", plural: "symbioses",
		parents:      kindMask(KindEcosystem, KindScene),
		masterOf:     []masterRole{{name: "holobiont_apprentices", apprentices: kindMask(KindHolobiont)}},
		apprenticeOf: []apprenticeRole{{name: "pipeline", masters: kindMask(KindPipeline)}},
		erasable:     true, capacity: 256,
	},
	KindHolobiont: {
		name: "holobiont", plural: "holobionts",
		parents: kindMask(KindScene),
		owns:    []Kind{KindBiont},
		apprenticeOf: []apprenticeRole{
			{name: "symbiosis", masters: kindMask(KindSymbiosis)},
			{name: "brain", masters: kindMask(KindBrain)},
		},
		erasable: true, capacity: 256,
	},
	KindBiont: {
		name: "biont", plural: "bionts",
		parents:  kindMask(KindHolobiont),
		erasable: true, capacity: 1024,
	},
	KindBrain: {
		name: "brain", plural: "brains",
		parents:  kindMask(KindScene),
		masterOf: []masterRole{{name: "movables", apprentices: kindMask(KindObject, KindHolobiont)}},
		erasable: true, capacity: 16,
	},
	KindCamera: {
		name: "camera", plural: "cameras",
		parents:  kindMask(KindScene),
		erasable: true, capacity: 256,
	},
	KindFont2D: {
		name: "font_2d", plural: "font_2ds",
		parents:  kindMask(KindUniverse),
		owns:     []Kind{KindText2D},
		masterOf: []masterRole{{name: "console_apprentices", apprentices: kindMask(KindConsole)}},
		erasable: true, capacity: 256,
	},
	KindText2D: {
		name: "text_2d", plural: "text_2ds",
		parents:  kindMask(KindFont2D),
		erasable: true, capacity: 256,
	},
	KindConsole: {
		name: "console", plural: "consoles",
		parents:      kindMask(KindUniverse),
		apprenticeOf: []apprenticeRole{{name: "font", masters: kindMask(KindFont2D)}},
		capacity:     256,
	},
	KindVariable: {
		name: "variable", plural: "variables",
		erasable: true, capacity: 1024,
	},
}

// Every other kind owns variables.
func init() {
	for k := KindUniverse; k < KindVariable; k++ {
		kinds[k].owns = append(kinds[k].owns, KindVariable)
		kinds[KindVariable].parents.Mark(uint32(k))
	}
}

func kindMask(ks ...Kind) mask.Mask {
	var m mask.Mask
	for _, k := range ks {
		m.Mark(uint32(k))
	}
	return m
}

func maskHas(m mask.Mask, k Kind) bool {
	return m.ContainsAll(kindMask(k))
}

func (k Kind) info() *kindInfo {
	if k >= kindCount {
		return &kinds[KindInvalid]
	}
	return &kinds[k]
}

func (k Kind) String() string {
	return k.info().name
}

// Plural is the name the kind's parent slot sets are registered under.
func (k Kind) Plural() string {
	return k.info().plural
}

// Valid reports whether k names a concrete kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// AcceptsParent reports whether an entity of kind k may be owned by an entity of kind parent.
func (k Kind) AcceptsParent(parent Kind) bool {
	return maskHas(k.info().parents, parent)
}

// AcceptsMaster reports whether an entity of kind k may be an apprentice of an entity of kind master.
func (k Kind) AcceptsMaster(master Kind) bool {
	for _, role := range k.info().apprenticeOf {
		if maskHas(role.masters, master) {
			return true
		}
	}
	return false
}

// DefaultCapacity is the storage size used for k unless overridden.
func (k Kind) DefaultCapacity() uint32 {
	return k.info().capacity
}

func (k Kind) typeID() memory.TypeID {
	return memory.TypeID(k)
}

// ParseKind accepts a kind name or its plural.
func ParseKind(s string) (Kind, error) {
	for k := KindUniverse; k < kindCount; k++ {
		if kinds[k].name == s || kinds[k].plural == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown entity kind %q", s)
}

// Kinds lists every concrete kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindUniverse; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
