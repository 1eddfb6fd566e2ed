package graph

import (
	"sync"
	"testing"
)

func TestStore_SwapVisibility(t *testing.T) {
	first, err := BuildSnapshot([]Unit{{ID: "a", Name: "A", Type: TypePower}}, nil)
	if err != nil {
		t.Fatalf("BuildSnapshot failed: %v", err)
	}
	second, err := BuildSnapshot([]Unit{
		{ID: "a", Name: "A", Type: TypePower},
		{ID: "b", Name: "B", Type: TypeWater},
	}, nil)
	if err != nil {
		t.Fatalf("BuildSnapshot failed: %v", err)
	}

	store := NewStore(first)
	if store.Current().UnitCount() != 1 {
		t.Errorf("Expected initial snapshot with 1 unit")
	}

	prev := store.Swap(second)
	if prev != first {
		t.Errorf("Swap should return the previous snapshot")
	}
	if store.Current().UnitCount() != 2 {
		t.Errorf("Expected swapped snapshot with 2 units")
	}

	// The old reference is still a complete, usable snapshot.
	if prev.UnitCount() != 1 {
		t.Errorf("Previous snapshot should be intact")
	}
}

func TestStore_NilInitial(t *testing.T) {
	store := NewStore(nil)
	if store.Current() != nil {
		t.Error("Expected nil current snapshot before first swap")
	}
}

func TestStore_ConcurrentReadsDuringSwap(t *testing.T) {
	snapA, _ := BuildSnapshot([]Unit{{ID: "a", Name: "A", Type: TypePower}}, nil)
	snapB, _ := BuildSnapshot([]Unit{{ID: "b", Name: "B", Type: TypeWater}}, nil)

	store := NewStore(snapA)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				snap := store.Current()
				// Whichever snapshot we see, it is whole.
				if snap.UnitCount() != 1 {
					t.Errorf("Observed torn snapshot with %d units", snap.UnitCount())
					return
				}
			}
		}()
	}

	for j := 0; j < 500; j++ {
		store.Swap(snapB)
		store.Swap(snapA)
	}
	wg.Wait()
}
