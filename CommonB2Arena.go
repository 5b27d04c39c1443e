package box2d

import "fmt"

// B2Handle identifies a slot in an arena. The generation detects stale
// handles after the slot has been freed and reused. The zero handle is never
// issued.
type B2Handle struct {
	Index      int32
	Generation uint32
}

func (h B2Handle) IsNil() bool {
	return h.Generation == 0
}

func (h B2Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.Index, h.Generation)
}

// B2BodyHandle refers to a body stored in a B2World.
type B2BodyHandle B2Handle

func (h B2BodyHandle) IsNil() bool { return B2Handle(h).IsNil() }

// B2JointHandle refers to a joint stored in a B2World.
type B2JointHandle B2Handle

func (h B2JointHandle) IsNil() bool { return B2Handle(h).IsNil() }

// B2ContactHandle refers to a contact stored in a B2World.
type B2ContactHandle B2Handle

func (h B2ContactHandle) IsNil() bool { return B2Handle(h).IsNil() }

type b2ArenaSlot[T any] struct {
	value      *T
	generation uint32
}

// b2Arena is flat storage with generation-checked handles. Iteration runs in
// slot order, which keeps stepping deterministic.
type b2Arena[T any] struct {
	slots []b2ArenaSlot[T]
	free  []int32
	count int
}

func (a *b2Arena[T]) Insert(value *T) B2Handle {
	var index int32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = int32(len(a.slots))
		a.slots = append(a.slots, b2ArenaSlot[T]{})
	}

	slot := &a.slots[index]
	slot.generation++
	slot.value = value
	a.count++

	return B2Handle{Index: index, Generation: slot.generation}
}

func (a *b2Arena[T]) Get(h B2Handle) (*T, bool) {
	if h.Generation == 0 || h.Index < 0 || int(h.Index) >= len(a.slots) {
		return nil, false
	}

	slot := a.slots[h.Index]
	if slot.value == nil || slot.generation != h.Generation {
		return nil, false
	}

	return slot.value, true
}

func (a *b2Arena[T]) Remove(h B2Handle) (*T, bool) {
	value, ok := a.Get(h)
	if !ok {
		return nil, false
	}

	a.slots[h.Index].value = nil
	a.free = append(a.free, h.Index)
	a.count--

	return value, true
}

func (a *b2Arena[T]) Len() int {
	return a.count
}

// Each visits live values in slot order until fn returns false.
func (a *b2Arena[T]) Each(fn func(h B2Handle, value *T) bool) {
	for i := range a.slots {
		slot := a.slots[i]
		if slot.value == nil {
			continue
		}

		if !fn(B2Handle{Index: int32(i), Generation: slot.generation}, slot.value) {
			return
		}
	}
}
