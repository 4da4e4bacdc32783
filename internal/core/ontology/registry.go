package ontology

import (
	"sort"
	"strings"
)

// Indexable is a named, index-addressable collection of entities, such as
// the children of one kind held by a parent.
type Indexable interface {
	Len() int
	EntityAt(i int) Entity
}

// Registry maps names to entities within one scope. A name is bound at most
// once across entities and indexables, and is never overwritten.
type Registry struct {
	entities   map[string]Entity
	indexables map[string]Indexable
}

func NewRegistry() *Registry {
	return &Registry{
		entities:   make(map[string]Entity),
		indexables: make(map[string]Indexable),
	}
}

// Add binds name to e. It is a no-op returning false when name is empty or
// already bound.
func (r *Registry) Add(name string, e Entity) bool {
	if name == "" || r.IsName(name) {
		return false
	}
	r.entities[name] = e
	return true
}

func (r *Registry) AddIndexable(name string, ix Indexable) bool {
	if name == "" || r.IsName(name) {
		return false
	}
	r.indexables[name] = ix
	return true
}

func (r *Registry) Erase(name string) {
	delete(r.entities, name)
}

// EraseEntity removes name only while it is still bound to e.
func (r *Registry) EraseEntity(name string, e Entity) bool {
	if bound, ok := r.entities[name]; ok && bound == e {
		delete(r.entities, name)
		return true
	}
	return false
}

// Contains reports whether name is bound to an entity.
func (r *Registry) Contains(name string) bool {
	_, ok := r.entities[name]
	return ok
}

// IsName reports whether name is bound to an entity or an indexable.
func (r *Registry) IsName(name string) bool {
	if _, ok := r.entities[name]; ok {
		return true
	}
	_, ok := r.indexables[name]
	return ok
}

func (r *Registry) Lookup(name string) (Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

func (r *Registry) Indexable(name string) (Indexable, bool) {
	ix, ok := r.indexables[name]
	return ix, ok
}

// IndexedEntity returns entry i of the indexable registered as name.
func (r *Registry) IndexedEntity(name string, i int) (Entity, bool) {
	ix, ok := r.indexables[name]
	if !ok || i < 0 || i >= ix.Len() {
		return nil, false
	}
	e := ix.EntityAt(i)
	return e, e != nil
}

// Len is the number of entity names.
func (r *Registry) Len() int {
	return len(r.entities)
}

// EntityNames returns the bound entity names in lexical order.
func (r *Registry) EntityNames() []string {
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names returns every bound name, entities and indexables, in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entities)+len(r.indexables))
	for name := range r.entities {
		names = append(names, name)
	}
	for name := range r.indexables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Completions returns the names starting with prefix in lexical order.
func (r *Registry) Completions(prefix string) []string {
	var out []string
	for _, name := range r.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

func (r *Registry) NumberOfCompletions(prefix string) int {
	return len(r.Completions(prefix))
}

// Complete extends prefix to the longest prefix shared by all its completions.
// Without completions it returns prefix unchanged.
func (r *Registry) Complete(prefix string) string {
	matches := r.Completions(prefix)
	if len(matches) == 0 {
		return prefix
	}
	common := matches[0]
	for _, m := range matches[1:] {
		n := 0
		for n < len(common) && n < len(m) && common[n] == m[n] {
			n++
		}
		common = common[:n]
	}
	return common
}
