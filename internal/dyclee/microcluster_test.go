package dyclee

import (
	"math"
	"testing"
)

func TestMicroClusterAssimilate(t *testing.T) {
	mc := newMicroCluster(1, []float64{1, 2}, 0, []int64{0, 0})
	mc.Assimilate([]float64{3, 4}, 5)
	mc.Assimilate([]float64{2, 0}, 7)

	if mc.N != 3 {
		t.Fatalf("n = %d, want 3", mc.N)
	}
	if mc.TStart != 0 || mc.TLast != 7 {
		t.Fatalf("timestamps = (%d, %d), want (0, 7)", mc.TStart, mc.TLast)
	}

	// center must equal LS/n within an ulp after every ingestion.
	center := mc.Center()
	want := []float64{2, 2}
	for i := range center {
		if math.Abs(center[i]-want[i]) > 1e-15 {
			t.Errorf("center[%d] = %v, want %v", i, center[i], want[i])
		}
	}
}

func TestMicroClusterAbsorb(t *testing.T) {
	older := newMicroCluster(1, []float64{1, 1}, 0, []int64{0, 0})
	older.Assimilate([]float64{1, 1}, 2)
	younger := newMicroCluster(2, []float64{5, 5}, 4, []int64{1, 1})
	younger.Assimilate([]float64{7, 7}, 9)

	older.Absorb(younger)
	if older.N != 4 {
		t.Fatalf("n = %d, want 4", older.N)
	}
	if older.TStart != 0 {
		t.Errorf("t_start = %d, want the older microcluster's 0", older.TStart)
	}
	if older.TLast != 9 {
		t.Errorf("t_last = %d, want max of both, 9", older.TLast)
	}
	wantLS := []float64{14, 14}
	for i, v := range older.LS {
		if v != wantLS[i] {
			t.Errorf("LS[%d] = %v, want %v", i, v, wantLS[i])
		}
	}
}

func TestMicroClusterCopyIsDeep(t *testing.T) {
	mc := newMicroCluster(1, []float64{1, 2}, 0, []int64{3, 4})
	dup := mc.Copy()

	mc.Assimilate([]float64{9, 9}, 1)
	mc.addr[0] = 99

	if dup.N != 1 || dup.LS[0] != 1 || dup.addr[0] != 3 {
		t.Errorf("copy shares state with original: %+v", dup)
	}
}
