package dyclee

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FinalCluster summarizes one labeled group of microclusters emitted by
// a density stage.
type FinalCluster struct {
	Label         int64
	MicroClusters int
	Samples       int64
	// Center is the density-weighted centroid of the member centers.
	Center      []float64
	MeanDensity float64
	// Spread is the maximum Manhattan distance from Center to a member
	// center.
	Spread float64
}

// densityStage reclassifies every live microcluster against global
// density thresholds, rebuilds the active and outlier lists, and
// assembles final clusters by BFS from dense seeds across face-adjacent
// active microclusters. Labels are re-issued on every pass; callers
// relating labels across time must go through snapshots.
func (e *Engine) densityStage() {
	live := e.sortedLive()

	densities := make([]float64, len(live))
	volume := e.ctx.HyperboxVolume()
	for i, mc := range live {
		mc.Density = float64(mc.N) / volume
		densities[i] = mc.Density
	}
	meanD := stat.Mean(densities, nil)
	maxD := floats.Max(densities)
	dHi := meanD + (maxD-meanD)/2
	dLo := meanD

	// Classify and rebuild the partition. Labels reset each pass.
	clear(e.active)
	clear(e.outlier)
	var seeds []*MicroCluster
	for _, mc := range live {
		mc.Label = Unclassed
		switch {
		case mc.Density >= dHi:
			mc.Type = Dense
			e.active[mc.ID] = struct{}{}
			seeds = append(seeds, mc)
		case mc.Density >= dLo:
			mc.Type = SemiDense
			e.active[mc.ID] = struct{}{}
		default:
			mc.Type = LowDensity
			e.outlier[mc.ID] = struct{}{}
		}
	}

	// Seeds expand densest-first; ids break ties so a pass over an
	// unchanged population reproduces its labels exactly.
	sort.Slice(seeds, func(i, j int) bool {
		if seeds[i].Density != seeds[j].Density {
			return seeds[i].Density > seeds[j].Density
		}
		return seeds[i].ID < seeds[j].ID
	})

	var label int64
	members := make(map[int64][]*MicroCluster)
	for _, seed := range seeds {
		if seed.Label != Unclassed {
			continue
		}
		label++
		seed.Label = label
		members[label] = append(members[label], seed)

		queue := []*MicroCluster{seed}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, id := range e.grid.FaceNeighbors(u.addr) {
				if _, ok := e.active[id]; !ok {
					continue
				}
				v := e.pool[id]
				if v.Label != Unclassed {
					continue
				}
				v.Label = label
				members[label] = append(members[label], v)
				// Semi-dense members take the label but act as the
				// cluster boundary: they do not propagate it.
				if v.Type == Dense {
					queue = append(queue, v)
				}
			}
		}
	}

	e.finals = make([]FinalCluster, 0, len(members))
	for k := int64(1); k <= label; k++ {
		e.finals = append(e.finals, summarize(k, members[k]))
	}
}

// summarize computes the emitted form of one final cluster.
func summarize(label int64, members []*MicroCluster) FinalCluster {
	dims := len(members[0].LS)
	fc := FinalCluster{
		Label:         label,
		MicroClusters: len(members),
		Center:        make([]float64, dims),
	}
	var weight float64
	for _, mc := range members {
		fc.Samples += mc.N
		fc.MeanDensity += mc.Density
		floats.AddScaled(fc.Center, mc.Density, mc.Center())
		weight += mc.Density
	}
	fc.MeanDensity /= float64(len(members))
	if weight > 0 {
		floats.Scale(1/weight, fc.Center)
	}
	for _, mc := range members {
		d := floats.Distance(fc.Center, mc.Center(), 1)
		if d > fc.Spread {
			fc.Spread = d
		}
	}
	return fc
}
