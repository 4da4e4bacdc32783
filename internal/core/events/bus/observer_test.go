package bus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeusync/ontology/internal/core/observability/log"
)

func TestLogObserver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus.log")
	logger, err := log.NewWithOptions(log.LevelDebug, log.Options{OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	b := New()
	b.AddObserver(NewLogObserver(logger))
	if _, err := b.Subscribe("entity.created", func(Event) error { return nil }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if _, err := b.Subscribe("entity.destroyed", func(Event) error { return errors.New("boom") }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	_ = b.Publish(NewEvent("entity.created", "test", nil, 0, nil))
	_ = b.Publish(NewEvent("entity.destroyed", "test", nil, 0, nil))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	for _, want := range []string{
		`"msg":"event delivered"`,
		`"event":"entity.created"`,
		`"msg":"event delivery failed"`,
		`"component":"bus"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}
