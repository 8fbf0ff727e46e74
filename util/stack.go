package util

// Stack is a LIFO work list for traversals that must not recurse
type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(v A) {
	s.items = append(s.items, v)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) == 0 {
		return ret, false
	}
	lastIndex := len(s.items) - 1
	ret = s.items[lastIndex]
	// drop the reference so popped terms can be collected while the walk goes on
	var zero A
	s.items[lastIndex] = zero
	s.items = s.items[:lastIndex]
	return ret, true
}

func (s *Stack[A]) Len() int { return len(s.items) }
