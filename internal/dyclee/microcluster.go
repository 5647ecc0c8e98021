package dyclee

import "gonum.org/v1/gonum/floats"

// DensityType classifies a microcluster relative to the population
// density thresholds of the most recent density stage.
type DensityType uint8

const (
	LowDensity DensityType = iota
	SemiDense
	Dense
)

// String returns the display name of the density class.
func (d DensityType) String() string {
	switch d {
	case Dense:
		return "Dense"
	case SemiDense:
		return "Semi-Dense"
	default:
		return "Low-Density"
	}
}

// Unclassed is the label of a microcluster outside every final cluster.
// Final-cluster labels start at 1.
const Unclassed int64 = 0

// MicroCluster is the unit sufficient statistic of the engine: a
// hyperbox cell summarized by its linear sum, sample count and
// first/last assimilation timestamps. Microclusters are owned by the
// engine pool; the grid index and the active/outlier lists hold ids.
type MicroCluster struct {
	ID     int64
	N      int64
	LS     []float64
	TStart int64
	TLast  int64

	// Density is n/volume, recomputed by the density stage.
	Density float64
	// Type is the density class from the most recent density stage.
	Type DensityType
	// Label is the final-cluster label, Unclassed outside any cluster.
	Label int64

	addr []int64 // current grid address, maintained by the engine

	// forward points at the survivor when this microcluster was merged
	// away, so per-sample label reports can follow the chain.
	forward *MicroCluster
}

// newMicroCluster creates a microcluster seeded with a single sample.
func newMicroCluster(id int64, sample []float64, t int64, addr []int64) *MicroCluster {
	return &MicroCluster{
		ID:     id,
		N:      1,
		LS:     append([]float64(nil), sample...),
		TStart: t,
		TLast:  t,
		addr:   addr,
	}
}

// Center returns LS/n, freshly allocated.
func (mc *MicroCluster) Center() []float64 {
	center := append([]float64(nil), mc.LS...)
	floats.Scale(1/float64(mc.N), center)
	return center
}

// Address returns the current grid address. The returned slice is owned
// by the microcluster and must not be mutated.
func (mc *MicroCluster) Address() []int64 { return mc.addr }

// Assimilate folds a sample into the sufficient statistics. The grid
// address is not touched here; the engine re-addresses after every
// assimilation because the center may cross a cell boundary.
func (mc *MicroCluster) Assimilate(sample []float64, t int64) {
	floats.Add(mc.LS, sample)
	mc.N++
	mc.TLast = t
}

// Absorb merges another microcluster's statistics into mc. The caller
// is responsible for destroying the absorbed microcluster; mc keeps its
// own first-seen timestamp, which is never younger than the victim's.
func (mc *MicroCluster) Absorb(other *MicroCluster) {
	floats.Add(mc.LS, other.LS)
	mc.N += other.N
	if other.TLast > mc.TLast {
		mc.TLast = other.TLast
	}
}

// Copy returns a deep copy for snapshot capture.
func (mc *MicroCluster) Copy() *MicroCluster {
	dup := *mc
	dup.LS = append([]float64(nil), mc.LS...)
	dup.addr = append([]int64(nil), mc.addr...)
	return &dup
}
