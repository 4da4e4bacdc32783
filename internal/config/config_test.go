package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/ontology/internal/core/observability/log"
	"github.com/zeusync/ontology/internal/core/ontology"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, log.LevelInfo, cfg.LogLevel())
	assert.Equal(t, "/console", cfg.Console.Path)
	assert.Equal(t, 64, cfg.Console.MaxClients)
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(`
log:
  level: debug
memory:
  capacities:
    object: 32
    scenes: 4
  max_storages: 2
console:
  listen_addr: 0.0.0.0:9000
  request_timeout: 2s
  max_clients: 3
manifests:
  - world.yaml
  - props.yaml
`))
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.Equal(t, "0.0.0.0:9000", cfg.Console.ListenAddr)
	assert.Equal(t, "/console", cfg.Console.Path)
	assert.Equal(t, 2*time.Second, cfg.Console.RequestTimeout)
	assert.Equal(t, 3, cfg.Console.MaxClients)
	assert.Equal(t, []string{"world.yaml", "props.yaml"}, cfg.Manifests)

	u := ontology.NewUniverse(cfg.UniverseOptions()...)
	t.Cleanup(u.Shutdown)
	s, err := u.Factory().CreateScene(ontology.SceneStruct{GlobalName: "s"})
	require.NoError(t, err)
	for i := 0; i < 64; i++ {
		_, err := u.Factory().CreateObject(ontology.ObjectStruct{Parent: ontology.To(s)})
		require.NoError(t, err)
	}
	_, err = u.Factory().CreateObject(ontology.ObjectStruct{Parent: ontology.To(s)})
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"level":    "log:\n  level: loud\n",
		"encoding": "log:\n  encoding: xml\n",
		"kind":     "memory:\n  capacities:\n    dragon: 3\n",
		"zero":     "memory:\n  capacities:\n    object: 0\n",
		"path":     "console:\n  path: console\n",
		"clients":  "console:\n  max_clients: -1\n",
		"unknown":  "colour: red\n",
	}
	for name, doc := range cases {
		_, err := Load(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("console:\n  enabled: false\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Console.Enabled)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
