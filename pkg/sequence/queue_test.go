package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_FIFOAcrossGrowth(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 5; i++ {
		q.Enqueue(i)
	}
	v, _ := q.Dequeue()
	assert.Equal(t, 0, v)

	for i := 5; i < 20; i++ {
		q.Enqueue(i)
	}
	assert.Equal(t, 19, q.Len())

	for want := 1; want < 20; want++ {
		got, ok := q.Dequeue()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := q.Dequeue()
	assert.False(t, ok)
	assert.True(t, q.IsEmpty())
}

func TestPriorityQueue_HighestFirst(t *testing.T) {
	pq := NewPriorityQueue[uint32]()
	for _, s := range []uint32{3, 9, 1, 7} {
		pq.Enqueue(s, int(s))
	}
	assert.Equal(t, 4, pq.Len())

	var order []uint32
	for !pq.IsEmpty() {
		v, _ := pq.Dequeue()
		order = append(order, v)
	}
	assert.Equal(t, []uint32{9, 7, 3, 1}, order)
}
