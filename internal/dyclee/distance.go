package dyclee

import "gonum.org/v1/gonum/floats"

// route sends a sample to the nearest reachable microcluster, or spawns
// a new one in the outlier list when no candidate exists. Candidates are
// the occupants of the Moore neighborhood of the sample's cell, at most
// 3^dcont grid probes.
func (e *Engine) route(sample []float64, t int64) *MicroCluster {
	addr := e.ctx.Address(sample)

	var best *MicroCluster
	var bestDist float64
	for _, id := range e.grid.MooreNeighbors(addr) {
		mc := e.pool[id]
		d := floats.Distance(mc.Center(), sample, 2)
		if best == nil || d < bestDist {
			best, bestDist = mc, d
			continue
		}
		// Equidistant candidates resolve to the older microcluster for
		// stability, then to the smaller id.
		if d == bestDist && (mc.TStart < best.TStart ||
			(mc.TStart == best.TStart && mc.ID < best.ID)) {
			best = mc
		}
	}

	if best == nil {
		mc := newMicroCluster(e.nextID, sample, t, addr)
		e.nextID++
		e.pool[mc.ID] = mc
		e.outlier[mc.ID] = struct{}{}
		e.grid.Insert(addr, mc.ID)
		return mc
	}

	best.Assimilate(sample, t)
	return e.place(best)
}

// place re-addresses a microcluster whose center may have crossed a
// cell boundary. When the new cell is occupied, the older microcluster
// absorbs the younger and the survivor is re-addressed in turn, so the
// grid stays one-occupant-per-cell.
func (e *Engine) place(mc *MicroCluster) *MicroCluster {
	addr := e.ctx.Address(mc.Center())
	if addrEqual(addr, mc.addr) {
		return mc
	}
	e.grid.Remove(mc.addr, mc.ID)
	for {
		otherID, occupied := e.grid.Lookup(addr)
		if !occupied {
			mc.addr = addr
			e.grid.Insert(addr, mc.ID)
			return mc
		}

		other := e.pool[otherID]
		survivor, victim := mc, other
		if other.TStart < mc.TStart || (other.TStart == mc.TStart && other.ID < mc.ID) {
			survivor, victim = other, mc
		}
		e.grid.Remove(other.addr, other.ID)
		survivor.Absorb(victim)
		victim.forward = survivor
		e.destroy(victim)
		mc = survivor
		addr = e.ctx.Address(mc.Center())
	}
}

// destroy removes a microcluster from the pool and both lists. Grid
// entries are the caller's responsibility.
func (e *Engine) destroy(mc *MicroCluster) {
	delete(e.pool, mc.ID)
	delete(e.active, mc.ID)
	delete(e.outlier, mc.ID)
}

// evictStale destroys outlier-list microclusters untouched for TGlobal
// samples.
func (e *Engine) evictStale(t int64) {
	if e.cfg.TGlobal <= 0 {
		return
	}
	for id := range e.outlier {
		mc := e.pool[id]
		if t-mc.TLast >= e.cfg.TGlobal {
			e.grid.Remove(mc.addr, mc.ID)
			e.destroy(mc)
		}
	}
}
