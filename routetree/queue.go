package routetree

// queue is a minimal FIFO list. Child levels and verb declarations are
// kept in queues so that flattening hands them to the router in the
// order the caller declared them. Popping is destructive on purpose:
// once an item has been taken it is gone, which is what makes repeated
// Build calls side-effect free.
type queue[T any] struct {
	items []T
}

// push appends v to the tail of the queue.
func (q *queue[T]) push(v T) {
	q.items = append(q.items, v)
}

// pop removes and returns the head of the queue. The boolean is false
// once the queue is empty.
func (q *queue[T]) pop() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, true
}
