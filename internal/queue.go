package internal

// generics FIFO Queue
type Queue[T any] struct {
	elements []T
}

func (q *Queue[T]) Push(element T) {
	q.elements = append(q.elements, element)
}

func (q *Queue[T]) Len() int {
	return len(q.elements)
}

// Pop removes the oldest element. It panics on an empty queue.
func (q *Queue[T]) Pop() T {
	element := q.elements[0]
	var zero T
	q.elements[0] = zero
	q.elements = q.elements[1:]
	return element
}
