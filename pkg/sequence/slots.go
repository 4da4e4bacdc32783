package sequence

// SlotVector is an index-addressable vector of optional entries. Released
// indices are recycled oldest-first; releasing the highest index trims the
// trailing run of empty entries so Len always points one past the last live entry.
type SlotVector[T any] struct {
	entries []*T
	free    *Queue[int]
	count   int
}

func NewSlotVector[T any]() *SlotVector[T] {
	return &SlotVector[T]{free: NewQueue[int]()}
}

// Acquire returns the index the next entry should occupy. Free indices that
// no longer fall inside the vector are discarded.
func (v *SlotVector[T]) Acquire() int {
	for {
		id, ok := v.free.Dequeue()
		if !ok {
			break
		}
		if id < len(v.entries) {
			return id
		}
	}
	v.entries = append(v.entries, nil)
	return len(v.entries) - 1
}

// Set stores entry at index id, which must come from Acquire.
func (v *SlotVector[T]) Set(id int, entry *T) {
	if v.entries[id] == nil && entry != nil {
		v.count++
	}
	v.entries[id] = entry
}

// Release empties index id and queues it for reuse. It reports false if
// id is out of range or already empty.
func (v *SlotVector[T]) Release(id int) bool {
	if id < 0 || id >= len(v.entries) || v.entries[id] == nil {
		return false
	}
	v.entries[id] = nil
	v.count--
	v.free.Enqueue(id)

	if id == len(v.entries)-1 {
		n := len(v.entries)
		for n > 0 && v.entries[n-1] == nil {
			n--
		}
		v.entries = v.entries[:n]
	}
	return true
}

// Get returns the entry at id, or nil for holes and out-of-range ids.
func (v *SlotVector[T]) Get(id int) *T {
	if id < 0 || id >= len(v.entries) {
		return nil
	}
	return v.entries[id]
}

// Len is the length of the vector including holes.
func (v *SlotVector[T]) Len() int {
	return len(v.entries)
}

// Count is the number of live entries.
func (v *SlotVector[T]) Count() int {
	return v.count
}

// Live iterates the non-empty entries in index order.
func (v *SlotVector[T]) Live() *Iterator[*T] {
	return &Iterator[*T]{
		seq: func(yield func(*T) bool) {
			for _, e := range v.entries {
				if e == nil {
					continue
				}
				if !yield(e) {
					return
				}
			}
		},
	}
}

// Snapshot copies the live entries so callers may mutate the vector while
// walking the result.
func (v *SlotVector[T]) Snapshot() []*T {
	return v.Live().Collect()
}
