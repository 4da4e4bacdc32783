package ontology

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/ontology/internal/core/events/bus"
)

type recorder struct {
	mu     sync.Mutex
	events []bus.Event
}

func (r *recorder) handle(e bus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) ofType(typ string) []EntityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []EntityEvent
	for _, e := range r.events {
		if e.Type() == typ {
			out = append(out, e.Data().(EntityEvent))
		}
	}
	return out
}

func newTestUniverse(t *testing.T, opts ...Option) (*Universe, *recorder) {
	t.Helper()
	b := bus.New()
	rec := &recorder{}
	_, err := b.Subscribe(bus.AnyEvent, rec.handle)
	require.NoError(t, err)

	base := []Option{WithGlobalName("universe"), WithEventBus(b)}
	u := NewUniverse(append(base, opts...)...)
	t.Cleanup(u.Shutdown)
	return u, rec
}

func mustScene(t *testing.T, u *Universe, name string) *Scene {
	t.Helper()
	s, err := u.Factory().CreateScene(SceneStruct{GlobalName: name})
	require.NoError(t, err)
	return s
}

func mustEcosystem(t *testing.T, u *Universe, name string) *Ecosystem {
	t.Helper()
	e, err := u.Factory().CreateEcosystem(EcosystemStruct{GlobalName: name})
	require.NoError(t, err)
	return e
}

func mustObject(t *testing.T, u *Universe, parent Entity, local string) *Object {
	t.Helper()
	o, err := u.Factory().CreateObject(ObjectStruct{Parent: To(parent), LocalName: local})
	require.NoError(t, err)
	return o
}

func mustPipeline(t *testing.T, u *Universe, parent Entity, global string) *Pipeline {
	t.Helper()
	p, err := u.Factory().CreatePipeline(PipelineStruct{Parent: To(parent), GlobalName: global})
	require.NoError(t, err)
	return p
}

func mustMaterial(t *testing.T, u *Universe, parent Entity, pipeline *Pipeline, global string) *Material {
	t.Helper()
	m, err := u.Factory().CreateMaterial(MaterialStruct{
		Parent:     To(parent),
		Pipeline:   To(pipeline),
		GlobalName: global,
	})
	require.NoError(t, err)
	return m
}
