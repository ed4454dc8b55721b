package book

import "testing"

func TestRBTreeInsertFindDelete(t *testing.T) {
	tree := newRBTree()
	pl1 := tree.UpsertLevel(100)
	if pl1 == nil {
		t.Fatal("UpsertLevel failed")
	}
	if pl2 := tree.FindLevel(100); pl2 != pl1 {
		t.Error("FindLevel did not return same PriceLevel")
	}

	tree.UpsertLevel(200)
	if tree.MinLevel().Price != 100 {
		t.Error("expected min=100")
	}
	if tree.MaxLevel().Price != 200 {
		t.Error("expected max=200")
	}

	if !tree.DeleteLevel(100) {
		t.Error("DeleteLevel failed")
	}
	if tree.FindLevel(100) != nil {
		t.Error("expected level 100 to be gone")
	}
}

func TestDeleteNonExistentLevel(t *testing.T) {
	tree := newRBTree()
	if tree.DeleteLevel(123) {
		t.Error("expected false when deleting non-existent level")
	}
}

func TestEmptyTreeMinMax(t *testing.T) {
	tree := newRBTree()
	if tree.MinLevel() != nil || tree.MaxLevel() != nil {
		t.Error("expected nil for min/max on empty tree")
	}
}

func TestUpsertDuplicateLevel(t *testing.T) {
	tree := newRBTree()
	pl1 := tree.UpsertLevel(150)
	pl2 := tree.UpsertLevel(150)
	if pl1 != pl2 {
		t.Error("Upsert should return the same node for duplicate level")
	}
	if tree.Size() != 1 {
		t.Errorf("duplicate upsert grew the tree: size=%d", tree.Size())
	}
}

func TestTraversalOrder(t *testing.T) {
	tree := newRBTree()
	for _, p := range []int64{500, 100, 300, 400, 200} {
		tree.UpsertLevel(p)
	}

	var asc []int64
	tree.ForEachAscending(func(lvl *PriceLevel) bool {
		asc = append(asc, lvl.Price)
		return true
	})
	want := []int64{100, 200, 300, 400, 500}
	for i := range want {
		if asc[i] != want[i] {
			t.Fatalf("ascending walk out of order: got %v", asc)
		}
	}

	var desc []int64
	tree.ForEachDescending(func(lvl *PriceLevel) bool {
		desc = append(desc, lvl.Price)
		return true
	})
	for i := range want {
		if desc[i] != want[len(want)-1-i] {
			t.Fatalf("descending walk out of order: got %v", desc)
		}
	}
}

func TestTraversalEarlyStop(t *testing.T) {
	tree := newRBTree()
	for _, p := range []int64{1, 2, 3, 4} {
		tree.UpsertLevel(p)
	}
	visited := 0
	tree.ForEachAscending(func(lvl *PriceLevel) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("expected early stop after 2 levels, visited %d", visited)
	}
}

func TestDeleteKeepsOrdering(t *testing.T) {
	tree := newRBTree()
	for p := int64(1); p <= 64; p++ {
		tree.UpsertLevel(p * 10)
	}
	for p := int64(1); p <= 64; p += 2 {
		if !tree.DeleteLevel(p * 10) {
			t.Fatalf("delete %d failed", p*10)
		}
	}

	if tree.Size() != 32 {
		t.Fatalf("expected 32 levels, got %d", tree.Size())
	}
	prev := int64(0)
	tree.ForEachAscending(func(lvl *PriceLevel) bool {
		if lvl.Price <= prev {
			t.Fatalf("ordering broken after deletes: %d after %d", lvl.Price, prev)
		}
		prev = lvl.Price
		return true
	})
}
