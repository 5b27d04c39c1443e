package box2d

// B2GrowableStack is a LIFO stack used by the island search.
type B2GrowableStack[T any] struct {
	items []T
}

func NewB2GrowableStack[T any](capacity int) *B2GrowableStack[T] {
	return &B2GrowableStack[T]{
		items: make([]T, 0, capacity),
	}
}

// Return the stack's length
func (s B2GrowableStack[T]) GetCount() int {
	return len(s.items)
}

// Push a new element onto the stack
func (s *B2GrowableStack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Remove the top element from the stack and return its value.
// The second result is false when the stack is empty.
func (s *B2GrowableStack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}

	last := len(s.items) - 1
	value := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return value, true
}

func (s *B2GrowableStack[T]) Reset() {
	var zero T
	for i := range s.items {
		s.items[i] = zero
	}
	s.items = s.items[:0]
}
