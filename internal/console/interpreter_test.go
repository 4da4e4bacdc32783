package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/ontology/internal/core/manifest"
	"github.com/zeusync/ontology/internal/core/ontology"
)

const world = `
universe:
  global_name: cosmos
entities:
  - kind: ecosystem
    global_name: earth
    children:
      - kind: pipeline
        global_name: standard
  - kind: scene
    global_name: meadow
    children:
      - kind: species
        local_name: cow
      - kind: brain
        local_name: herd
      - kind: object
        local_name: bessie
        species: meadow/cow
        brain: meadow/herd
  - kind: scene
    global_name: pasture
`

func newWorld(t *testing.T) *ontology.Universe {
	t.Helper()
	m, err := manifest.Load(strings.NewReader(world))
	require.NoError(t, err)
	u := ontology.NewUniverse()
	t.Cleanup(u.Shutdown)
	_, err = m.Build(u)
	require.NoError(t, err)
	return u
}

func run(t *testing.T, in *Interpreter, line string) string {
	t.Helper()
	out, err := in.Execute(line)
	require.NoError(t, err, line)
	return out
}

func TestInterpreterNames(t *testing.T) {
	in := NewInterpreter(newWorld(t), nil)

	assert.Equal(t, "cosmos\nearth\nmeadow\npasture\nstandard", run(t, in, "names"))
	assert.Equal(t, "bessie\ncow\nherd", run(t, in, "names meadow"))
	assert.Empty(t, run(t, in, "   "))
}

func TestInterpreterInfo(t *testing.T) {
	in := NewInterpreter(newWorld(t), nil)

	out := run(t, in, "info meadow/bessie")
	assert.Contains(t, out, "kind:        object")
	assert.Contains(t, out, "local name:  bessie")
	assert.Contains(t, out, `parent:      scene "meadow"`)
	assert.Contains(t, out, "species:     species .cow")
	assert.Contains(t, out, "brain:       brain .herd")
	assert.Contains(t, out, "erasable:    true")

	out = run(t, in, "info /")
	assert.Contains(t, out, "kind:        universe")
	assert.Contains(t, out, "parent:      -")
	assert.Contains(t, out, "erasable:    false")
}

func TestInterpreterChildren(t *testing.T) {
	in := NewInterpreter(newWorld(t), nil)

	out := run(t, in, "children meadow")
	assert.Equal(t, "species 0 species .cow\nobject 0 object .bessie\nbrain 0 brain .herd", out)
}

func TestInterpreterComplete(t *testing.T) {
	in := NewInterpreter(newWorld(t), nil)

	assert.Equal(t, "meadow", run(t, in, "complete me"))
	assert.Equal(t, "scenes\nstandard", run(t, in, "complete s"))
	assert.Empty(t, run(t, in, "complete zzz"))
}

func TestInterpreterBindDropsCrossSceneMasters(t *testing.T) {
	u := newWorld(t)
	in := NewInterpreter(u, nil)

	run(t, in, "bind meadow/bessie pasture")
	out := run(t, in, "info pasture/bessie")
	assert.Contains(t, out, `parent:      scene "pasture"`)
	assert.Contains(t, out, "species:     -")
	assert.Contains(t, out, "brain:       -")

	_, err := in.Execute("master pasture/bessie meadow/cow")
	assert.ErrorIs(t, err, ontology.ErrLocalityViolation)
}

func TestInterpreterMasterEdges(t *testing.T) {
	in := NewInterpreter(newWorld(t), nil)

	run(t, in, "unmaster meadow/bessie brain")
	assert.Contains(t, run(t, in, "info meadow/bessie"), "brain:       -")

	run(t, in, "bind meadow/bessie meadow/herd")
	assert.Contains(t, run(t, in, "info meadow/bessie"), "brain:       brain .herd")

	run(t, in, "unmaster meadow/bessie species")
	run(t, in, "master meadow/bessie meadow/cow")
	assert.Contains(t, run(t, in, "info meadow/bessie"), "species:     species .cow")

	_, err := in.Execute("unmaster meadow/bessie dragon")
	assert.Error(t, err)
	_, err = in.Execute("master meadow/bessie standard")
	assert.ErrorIs(t, err, ontology.ErrIncompatibleMaster)
}

func TestInterpreterRenameAndDestroy(t *testing.T) {
	in := NewInterpreter(newWorld(t), nil)

	run(t, in, "rename meadow global field")
	assert.Contains(t, run(t, in, "names"), "field")

	run(t, in, "rename field/bessie local daisy")
	assert.Equal(t, "cow\ndaisy\nherd", run(t, in, "names field"))

	_, err := in.Execute("rename field global earth")
	assert.ErrorIs(t, err, ontology.ErrNameCollision)
	_, err = in.Execute("rename field sideways x")
	assert.ErrorIs(t, err, ErrUsage)

	assert.Equal(t, "8", run(t, in, "count"))
	assert.Equal(t, "destroyed 4", run(t, in, "destroy field"))
	assert.Equal(t, "4", run(t, in, "count"))

	_, err = in.Execute("destroy /")
	assert.ErrorIs(t, err, ontology.ErrNotErasable)
	_, err = in.Execute("destroy field")
	assert.ErrorIs(t, err, ontology.ErrUnresolvedRef)
}

func TestInterpreterDigest(t *testing.T) {
	a := NewInterpreter(newWorld(t), nil)
	b := NewInterpreter(newWorld(t), nil)

	assert.Equal(t, run(t, a, "digest"), run(t, b, "digest"))
	assert.Len(t, run(t, a, "digest"), 16)

	run(t, b, "rename pasture global field")
	assert.NotEqual(t, run(t, a, "digest"), run(t, b, "digest"))
}

func TestInterpreterVariables(t *testing.T) {
	u := newWorld(t)
	meadow, err := u.ResolvePath("meadow")
	require.NoError(t, err)
	var applied string
	_, err = u.Factory().CreateVariable(ontology.VariableStruct{
		Parent:       ontology.To(meadow),
		LocalName:    "weather",
		InitialValue: "sun",
		Activate: func(_ ontology.Entity, v *ontology.Variable) error {
			applied = v.Get()
			return nil
		},
	})
	require.NoError(t, err)
	in := NewInterpreter(u, nil)

	assert.Equal(t, "sun", run(t, in, "get meadow/weather"))
	run(t, in, "set meadow/weather light rain")
	assert.Equal(t, "light rain", run(t, in, "get meadow/weather"))
	assert.Equal(t, "light rain", applied)

	_, err = in.Execute("get meadow/bessie")
	assert.ErrorIs(t, err, ErrNotVariable)
	_, err = in.Execute("set meadow/weather")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestInterpreterErrors(t *testing.T) {
	in := NewInterpreter(newWorld(t), nil)

	_, err := in.Execute("fly meadow")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	_, err = in.Execute("info")
	assert.ErrorIs(t, err, ErrUsage)
	_, err = in.Execute("count 3")
	assert.ErrorIs(t, err, ErrUsage)
	_, err = in.Execute("info nowhere/nothing")
	assert.ErrorIs(t, err, ontology.ErrUnresolvedRef)
}

func TestInterpreterHelp(t *testing.T) {
	in := NewInterpreter(newWorld(t), nil)

	out := run(t, in, "help")
	for _, name := range []string{"names", "info", "bind", "digest", "get", "set", "help"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, run(t, in, "help rename"), "global|local")

	_, err := in.Execute("help fly")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
