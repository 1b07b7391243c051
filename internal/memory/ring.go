package memory

// ring is a bounded FIFO. Once full, each push evicts the oldest entry.
type ring[T any] struct {
	items []T
	start int
	size  int
}

func newRing[T any](capacity int) *ring[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &ring[T]{items: make([]T, capacity)}
}

// push appends v, evicting the oldest entry when at capacity.
// It reports the evicted value, if any.
func (r *ring[T]) push(v T) (evicted T, ok bool) {
	if len(r.items) == 0 {
		return v, true
	}
	if r.size < len(r.items) {
		r.items[(r.start+r.size)%len(r.items)] = v
		r.size++
		return evicted, false
	}
	evicted = r.items[r.start]
	r.items[r.start] = v
	r.start = (r.start + 1) % len(r.items)
	return evicted, true
}

// each calls fn for every entry, oldest first, until fn returns false.
func (r *ring[T]) each(fn func(T) bool) {
	for i := 0; i < r.size; i++ {
		if !fn(r.items[(r.start+i)%len(r.items)]) {
			return
		}
	}
}

// slice returns a copy of the entries, oldest first.
func (r *ring[T]) slice() []T {
	out := make([]T, 0, r.size)
	r.each(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

func (r *ring[T]) len() int {
	return r.size
}

func (r *ring[T]) reset() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.start = 0
	r.size = 0
}
