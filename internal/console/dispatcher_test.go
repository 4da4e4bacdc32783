package console

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDispatcher(t *testing.T, queue int) (*Dispatcher, context.CancelFunc, <-chan error) {
	t.Helper()
	d := NewDispatcher(NewInterpreter(newWorld(t), nil), queue, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	t.Cleanup(cancel)
	return d, cancel, done
}

func TestDispatcherSubmit(t *testing.T) {
	d, _, _ := startDispatcher(t, 4)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := d.Submit(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, "8", out)

	_, err = d.Submit(ctx, "fly")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	m := d.Metrics()
	assert.Equal(t, int64(2), m.Executed)
	assert.Equal(t, int64(1), m.Failed)
}

func TestDispatcherSerialisesConcurrentSubmits(t *testing.T) {
	d, _, _ := startDispatcher(t, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Submit(ctx, "digest"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(50), d.Metrics().Executed)
}

func TestDispatcherClosed(t *testing.T) {
	d, cancel, done := startDispatcher(t, 0)
	cancel()
	require.NoError(t, <-done)

	_, err := d.Submit(context.Background(), "count")
	assert.ErrorIs(t, err, ErrDispatcherClosed)

	assert.ErrorIs(t, d.Run(context.Background()), ErrDispatcherClosed)
}

func TestDispatcherSubmitHonoursContext(t *testing.T) {
	d := NewDispatcher(NewInterpreter(newWorld(t), nil), 0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := d.Submit(ctx, "count")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
