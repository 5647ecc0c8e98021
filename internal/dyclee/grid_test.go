package dyclee

import (
	"sort"
	"testing"
)

func testGrid(t *testing.T) *GridIndex {
	t.Helper()
	ctx := testContext(t, Config{Phi: 0.1, Lo: []float64{0, 0}, Hi: []float64{1, 1}})
	return newGridIndex(ctx)
}

func sortedIDs(ids []int64) []int64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestGridInsertLookupRemove(t *testing.T) {
	g := testGrid(t)
	addr := []int64{2, 3}

	if _, ok := g.Lookup(addr); ok {
		t.Fatal("empty grid reported an occupant")
	}
	g.Insert(addr, 7)
	if id, ok := g.Lookup(addr); !ok || id != 7 {
		t.Fatalf("Lookup = (%d, %v), want (7, true)", id, ok)
	}

	// Remove with the wrong id must not clear the cell.
	g.Remove(addr, 8)
	if _, ok := g.Lookup(addr); !ok {
		t.Fatal("Remove with mismatched id cleared the cell")
	}
	g.Remove(addr, 7)
	if _, ok := g.Lookup(addr); ok {
		t.Fatal("cell still occupied after Remove")
	}
}

func TestGridMooreNeighbors(t *testing.T) {
	g := testGrid(t)
	g.Insert([]int64{5, 5}, 1)
	g.Insert([]int64{4, 4}, 2) // corner
	g.Insert([]int64{6, 5}, 3) // face
	g.Insert([]int64{7, 5}, 4) // two cells away
	g.Insert([]int64{5, 7}, 5) // two cells away

	got := sortedIDs(g.MooreNeighbors([]int64{5, 5}))
	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("MooreNeighbors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MooreNeighbors = %v, want %v", got, want)
		}
	}
}

func TestGridFaceNeighbors(t *testing.T) {
	g := testGrid(t)
	g.Insert([]int64{5, 5}, 1)
	g.Insert([]int64{4, 4}, 2) // corner: excluded
	g.Insert([]int64{6, 5}, 3)
	g.Insert([]int64{5, 4}, 4)

	got := sortedIDs(g.FaceNeighbors([]int64{5, 5}))
	want := []int64{3, 4}
	if len(got) != len(want) {
		t.Fatalf("FaceNeighbors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FaceNeighbors = %v, want %v", got, want)
		}
	}
}

func TestGridOrdinalDimensionHeldFixed(t *testing.T) {
	ctx := testContext(t, Config{
		Phi:     0.1,
		Lo:      []float64{0, 0},
		Hi:      []float64{1, 0},
		Ordinal: []bool{false, true},
	})
	g := newGridIndex(ctx)
	g.Insert([]int64{4, 7}, 1)
	g.Insert([]int64{4, 8}, 2)

	got := g.MooreNeighbors([]int64{5, 7})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("MooreNeighbors across ordinal dim = %v, want [1]", got)
	}
}

func TestGridDoubleInsertPanics(t *testing.T) {
	g := testGrid(t)
	g.Insert([]int64{1, 1}, 1)
	defer func() {
		if recover() == nil {
			t.Fatal("second Insert into an occupied cell did not panic")
		}
	}()
	g.Insert([]int64{1, 1}, 2)
}
