package concurrent

import (
	"errors"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/ontology/pkg/sequence"
)

func TestConcurrent(t *testing.T) {
	var sum atomic.Int64
	err := Concurrent(sequence.From([]int{1, 2, 3, 4}), func(v int) error {
		sum.Add(int64(v))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), sum.Load())

	boom := errors.New("boom")
	err = Concurrent(sequence.From([]int{1, 2, 3}), func(v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestParallelMapPreservesOrder(t *testing.T) {
	var running, peak atomic.Int32
	out, err := ParallelMap(sequence.From([]int{1, 2, 3, 4, 5, 6}), 2, func(v int) (string, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		defer running.Add(-1)
		return strconv.Itoa(v * v), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4", "9", "16", "25", "36"}, out)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestParallelMapError(t *testing.T) {
	out, err := ParallelMap(sequence.From([]string{"1", "x", "3"}), 0, strconv.Atoi)
	assert.Error(t, err)
	assert.Nil(t, out)
}
