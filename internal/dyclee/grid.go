package dyclee

import (
	"strconv"
	"strings"
)

// GridIndex maps integer hyperbox addresses to the id of the occupying
// microcluster. At most one live microcluster occupies any address.
//
// Addresses are d-dimensional, so keys are delimiter-joined decimal
// strings rather than a paired integer; pairing functions do not extend
// cleanly past two dimensions.
type GridIndex struct {
	ctx   *Context
	cells map[string]int64
}

// newGridIndex creates an empty index over the given context.
func newGridIndex(ctx *Context) *GridIndex {
	return &GridIndex{ctx: ctx, cells: make(map[string]int64)}
}

func addrKey(addr []int64) string {
	var b strings.Builder
	for i, a := range addr {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(a, 10))
	}
	return b.String()
}

// Lookup returns the id occupying the address, if any.
func (g *GridIndex) Lookup(addr []int64) (int64, bool) {
	id, ok := g.cells[addrKey(addr)]
	return id, ok
}

// Insert registers id under addr. The cell must be empty.
func (g *GridIndex) Insert(addr []int64, id int64) {
	key := addrKey(addr)
	if _, ok := g.cells[key]; ok {
		panic("dyclee: grid cell already occupied")
	}
	g.cells[key] = id
}

// Remove clears the address if it is occupied by id.
func (g *GridIndex) Remove(addr []int64, id int64) {
	key := addrKey(addr)
	if cur, ok := g.cells[key]; ok && cur == id {
		delete(g.cells, key)
	}
}

// Len returns the number of occupied cells.
func (g *GridIndex) Len() int { return len(g.cells) }

// MooreNeighbors returns the ids occupying the 3^dcont Moore
// neighborhood of addr, the cell at addr included. Ordinal dimensions
// are held fixed.
func (g *GridIndex) MooreNeighbors(addr []int64) []int64 {
	var ids []int64
	probe := append([]int64(nil), addr...)
	g.walkMoore(probe, 0, &ids)
	return ids
}

// walkMoore recursively enumerates offset combinations over continuous
// dimensions, probing the grid at each full address.
func (g *GridIndex) walkMoore(probe []int64, dim int, ids *[]int64) {
	if dim == len(probe) {
		if id, ok := g.cells[addrKey(probe)]; ok {
			*ids = append(*ids, id)
		}
		return
	}
	if g.ctx.ordinal[dim] {
		g.walkMoore(probe, dim+1, ids)
		return
	}
	orig := probe[dim]
	for off := int64(-1); off <= 1; off++ {
		probe[dim] = orig + off
		g.walkMoore(probe, dim+1, ids)
	}
	probe[dim] = orig
}

// FaceNeighbors returns the ids occupying the 2*dcont face-adjacent
// cells of addr. The cell at addr itself is excluded.
func (g *GridIndex) FaceNeighbors(addr []int64) []int64 {
	var ids []int64
	probe := append([]int64(nil), addr...)
	for dim := range probe {
		if g.ctx.ordinal[dim] {
			continue
		}
		orig := probe[dim]
		for _, off := range [2]int64{-1, 1} {
			probe[dim] = orig + off
			if id, ok := g.cells[addrKey(probe)]; ok {
				ids = append(ids, id)
			}
		}
		probe[dim] = orig
	}
	return ids
}
