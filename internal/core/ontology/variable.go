package ontology

import (
	"fmt"

	"github.com/zeusync/ontology/internal/core/observability/log"
)

// ActivateFunc applies v's current value to owner. When it fails the value
// in effect before the change is restored.
type ActivateFunc func(owner Entity, v *Variable) error

// ReadFunc derives a variable's value from its owner.
type ReadFunc func(owner Entity) string

// Variable is a named string setting owned by another entity.
type Variable struct {
	entity
	value    string
	activate ActivateFunc
	read     ReadFunc
}

// CreateVariable builds the variable and runs its activate hook unless
// SkipActivate is set. A failing hook destroys the new variable again.
func (f *EntityFactory) CreateVariable(s VariableStruct) (*Variable, error) {
	v, err := create(f, blueprint{
		kind:       KindVariable,
		parent:     s.Parent,
		globalName: s.GlobalName,
		localName:  s.LocalName,
	}, func(v *Variable) {
		v.value = s.InitialValue
		v.activate = s.Activate
		v.read = s.Read
	})
	if err != nil || v.activate == nil || s.SkipActivate {
		return v, err
	}
	if err := v.activate(v.Parent(), v); err != nil {
		f.universe.log.Warn("variable activation failed", append(v.logFields(), log.Error(err))...)
		f.universe.destroy(v)
		return nil, fmt.Errorf("create %s: activate: %w", KindVariable, err)
	}
	return v, nil
}

// Get returns the read hook's result when one is set, the stored value otherwise.
func (v *Variable) Get() string {
	if v.read != nil {
		if owner := v.Parent(); owner != nil {
			return v.read(owner)
		}
	}
	return v.value
}

// Set stores value and runs the activate hook.
func (v *Variable) Set(value string) error {
	if err := v.live(); err != nil {
		return fmt.Errorf("set variable %q: %w", v.localName, err)
	}
	old := v.value
	v.value = value
	if v.activate == nil {
		return nil
	}
	if err := v.activate(v.Parent(), v); err != nil {
		v.value = old
		return fmt.Errorf("set variable %q: %w", v.localName, err)
	}
	return nil
}

func (v *Variable) BindToNewParent(parent Entity) error {
	return BindToNewParent(v, parent)
}
