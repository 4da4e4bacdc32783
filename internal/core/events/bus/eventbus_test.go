package bus

import (
	"errors"
	"testing"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_ string, _ Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_ string, handlers int, err error, _ int64) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got any
	_, err := b.Subscribe("entity.created", func(e Event) error {
		got = e.Data()
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err = b.Publish(NewEvent("entity.created", "tester", 123, 0, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got != 123 {
		t.Fatalf("handler not called, got %v", got)
	}
}

func TestDeliveryOrderAndWildcard(t *testing.T) {
	b := New()
	var order []string
	record := func(name string) EventHandler {
		return func(Event) error {
			order = append(order, name)
			return nil
		}
	}
	_, _ = b.Subscribe(AnyEvent, record("any"))
	_, _ = b.Subscribe("x", record("first"))
	_, _ = b.Subscribe("x", record("second"))
	_, _ = b.Subscribe("y", record("other"))

	if err := b.Publish(NewEvent("x", "src", nil, 0, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	want := []string{"first", "second", "any"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("x", func(Event) error { return errA })
	_, _ = b.Subscribe("x", func(Event) error { return errB })

	err := b.Publish(NewEvent("x", "src", nil, 0, nil))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected joined error, got %v", err)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	sub, _ := b.Subscribe("x", func(Event) error {
		calls++
		return nil
	})
	_ = b.Publish(NewEvent("x", "src", nil, 0, nil))
	if err := b.Unsubscribe(sub); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if sub.IsActive() {
		t.Fatal("subscription still active")
	}
	_ = b.Publish(NewEvent("x", "src", nil, 0, nil))
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if err := sub.Cancel(); err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if err := b.Unsubscribe(nil); err != nil {
		t.Fatalf("nil unsubscribe: %v", err)
	}
}

func TestFiltersAndMetrics(t *testing.T) {
	b := New()
	obs := &testObserver{}
	b.AddObserver(obs)
	_, _ = b.Subscribe("x", func(Event) error { return nil })

	reject := func(Event) bool { return false }
	if err := b.PublishWithFilters(NewEvent("x", "src", nil, 0, nil), reject); err != nil {
		t.Fatalf("filtered publish: %v", err)
	}
	if err := b.Publish(NewEvent("x", "src", nil, 0, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	m := b.GetMetrics()
	if m.Published != 1 || m.DroppedByFilters != 1 || m.DeliveredHandlers != 1 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	if obs.publishCount != 1 || obs.deliveredCount != 1 {
		t.Fatalf("observer saw publish=%d delivered=%d", obs.publishCount, obs.deliveredCount)
	}

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("x", "src", nil, 0, nil))
	if obs.publishCount != 1 {
		t.Fatal("removed observer still notified")
	}
}
