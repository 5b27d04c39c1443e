package box2d

import "testing"

func TestArenaStaleHandles(t *testing.T) {
	var a b2Arena[int]

	one, two := 1, 2
	h1 := a.Insert(&one)
	h2 := a.Insert(&two)

	if h1.IsNil() || h2.IsNil() {
		t.Fatal("issued a nil handle")
	}
	if a.Len() != 2 {
		t.Fatalf("len = %d, want 2", a.Len())
	}

	if v, ok := a.Remove(h1); !ok || *v != 1 {
		t.Fatalf("remove h1 = %v, %t", v, ok)
	}
	if _, ok := a.Get(h1); ok {
		t.Error("removed handle still resolves")
	}
	if _, ok := a.Remove(h1); ok {
		t.Error("double remove succeeded")
	}

	// The freed slot is reused with a new generation.
	three := 3
	h3 := a.Insert(&three)
	if h3.Index != h1.Index {
		t.Fatalf("slot %d not reused, got %d", h1.Index, h3.Index)
	}
	if h3.Generation == h1.Generation {
		t.Fatal("reused slot kept its generation")
	}
	if _, ok := a.Get(h1); ok {
		t.Error("stale handle resolves to the new value")
	}
	if v, ok := a.Get(h3); !ok || *v != 3 {
		t.Errorf("get h3 = %v, %t", v, ok)
	}

	if _, ok := a.Get(B2Handle{}); ok {
		t.Error("zero handle resolves")
	}
	if _, ok := a.Get(B2Handle{Index: 42, Generation: 1}); ok {
		t.Error("out of range handle resolves")
	}
}

func TestArenaEachOrderAndRemoval(t *testing.T) {
	var a b2Arena[int]

	values := []int{10, 20, 30, 40}
	handles := make([]B2Handle, len(values))
	for i := range values {
		handles[i] = a.Insert(&values[i])
	}

	// Removing during iteration skips the removed value.
	var seen []int
	a.Each(func(h B2Handle, v *int) bool {
		seen = append(seen, *v)
		if *v == 20 {
			a.Remove(handles[2])
		}
		return true
	})

	want := []int{10, 20, 40}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("visited %v, want %v", seen, want)
		}
	}

	count := 0
	a.Each(func(B2Handle, *int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("early stop visited %d values", count)
	}
}

func TestGrowableStack(t *testing.T) {
	s := NewB2GrowableStack[int](1)
	for i := 0; i < 5; i++ {
		s.Push(i)
	}
	if s.GetCount() != 5 {
		t.Fatalf("count = %d, want 5", s.GetCount())
	}

	for want := 4; want >= 0; want-- {
		v, ok := s.Pop()
		if !ok || v != want {
			t.Fatalf("pop = %d, %t, want %d", v, ok, want)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Error("pop on an empty stack succeeded")
	}
}
