package concurrent

import (
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/ontology/pkg/sequence"
)

// Concurrent runs the action function for each element of the iterator in a separate goroutine.
// It waits for all goroutines to finish and returns the first error encountered.
func Concurrent[T any](i *sequence.Iterator[T], action func(T) error) error {
	var g errgroup.Group
	for value := range i.Seq() {
		g.Go(func() error {
			return action(value)
		})
	}
	return g.Wait()
}

// ParallelMap applies mapFn to each element of the iterator, preserving order.
// The workers parameter bounds the number of goroutines; zero or less means unbounded.
// On failure it returns the first error and no results.
func ParallelMap[T any, R any](i *sequence.Iterator[T], workers int, mapFn func(T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for idx, val := range in {
		g.Go(func() error {
			r, err := mapFn(val)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
