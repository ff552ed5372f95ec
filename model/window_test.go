package model

import "testing"

func TestWindowSet_InsertKeepsOrder(t *testing.T) {
	var s WindowSet
	s.Insert(5, 6)
	s.Insert(1, 2)
	s.Insert(10, 10)

	if s.Card() != 3 {
		t.Fatalf("expected 3 windows, got %d", s.Card())
	}
	for i := 0; i < s.Card()-1; i++ {
		if s.Fetch(i).Right > s.Fetch(i+1).Left {
			t.Errorf("windows %d and %d overlap or are out of order: %v, %v",
				i, i+1, s.Fetch(i), s.Fetch(i+1))
		}
	}
}

func TestWindowSet_InsertMergesOverlap(t *testing.T) {
	var s WindowSet
	s.Insert(1, 3)
	s.Insert(2, 5)

	if s.Card() != 1 {
		t.Fatalf("expected overlapping windows to merge, got %d windows", s.Card())
	}
	if w := s.Fetch(0); w.Left != 1 || w.Right != 5 {
		t.Errorf("merged window = %v, want [1, 5]", w)
	}
}

func TestWindowSet_DegenerateDuplicatesMerge(t *testing.T) {
	var s WindowSet
	s.Insert(4, 4)
	s.Insert(4, 4)

	if s.Card() != 1 {
		t.Fatalf("expected duplicate degenerate windows to merge, got %d", s.Card())
	}
}

func TestWindowSet_InsertSwapsReversedBounds(t *testing.T) {
	var s WindowSet
	s.Insert(7, 3)

	if w := s.Fetch(0); w.Left != 3 || w.Right != 7 {
		t.Errorf("window = %v, want [3, 7]", w)
	}
}

func TestWindowSet_EmptySet(t *testing.T) {
	var s WindowSet
	if s.Card() != 0 {
		t.Fatalf("zero-value set should be empty, got %d windows", s.Card())
	}
	if got := s.Windows(); len(got) != 0 {
		t.Fatalf("Windows() on empty set = %v", got)
	}
}
