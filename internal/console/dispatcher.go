package console

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zeusync/ontology/internal/core/observability/log"
)

type request struct {
	line  string
	reply chan response
}

type response struct {
	output string
	err    error
}

// DispatcherMetrics counts what went through Run.
type DispatcherMetrics struct {
	Executed int64
	Failed   int64
}

// Dispatcher hands console lines from any goroutine to the goroutine that
// owns the universe. Only Run touches the interpreter.
type Dispatcher struct {
	interpreter *Interpreter
	logger      log.Log
	requests    chan request
	done        chan struct{}
	running     atomic.Bool

	executed atomic.Int64
	failed   atomic.Int64
}

func NewDispatcher(in *Interpreter, queueSize int, logger log.Log) *Dispatcher {
	if logger == nil {
		logger = log.NewNop()
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Dispatcher{
		interpreter: in,
		logger:      logger.With(log.String("component", "dispatcher")),
		requests:    make(chan request, queueSize),
		done:        make(chan struct{}),
	}
}

// Run executes submitted lines until ctx is cancelled. It must be called
// once, from the goroutine that owns the universe.
func (d *Dispatcher) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrDispatcherClosed
	}
	defer close(d.done)

	d.logger.Info("dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped",
				log.Int64("executed", d.executed.Load()),
				log.Int64("failed", d.failed.Load()))
			return nil
		case req := <-d.requests:
			start := time.Now()
			out, err := d.interpreter.Execute(req.line)
			d.executed.Add(1)
			if err != nil {
				d.failed.Add(1)
			}
			req.reply <- response{output: out, err: err}
			d.logger.Debug("request served",
				log.String("line", req.line),
				log.Duration("elapsed", time.Since(start)))
		}
	}
}

// Submit queues line and waits for its result. It fails with
// ErrDispatcherClosed once Run has returned.
func (d *Dispatcher) Submit(ctx context.Context, line string) (string, error) {
	req := request{line: line, reply: make(chan response, 1)}
	select {
	case d.requests <- req:
	case <-d.done:
		return "", ErrDispatcherClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case resp := <-req.reply:
		return resp.output, resp.err
	case <-d.done:
		// Run may have answered just before exiting.
		select {
		case resp := <-req.reply:
			return resp.output, resp.err
		default:
			return "", ErrDispatcherClosed
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (d *Dispatcher) Metrics() DispatcherMetrics {
	return DispatcherMetrics{
		Executed: d.executed.Load(),
		Failed:   d.failed.Load(),
	}
}
