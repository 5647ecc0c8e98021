package dyclee

import "math"

// Context is the immutable bounding box of the stream with the derived
// hyperbox geometry. It owns cell addressing and the two adjacency
// predicates used by the engine: Reachable gates ingestion candidacy
// (Moore neighborhood), Direct gates final-cluster connectivity (face
// adjacency). The two are kept separate on purpose; collapsing them
// changes cluster shapes.
type Context struct {
	lo      []float64
	hi      []float64
	side    []float64 // zero for ordinal dimensions
	ordinal []bool
	volume  float64 // product of sides over continuous dimensions
	cont    int     // number of continuous dimensions
}

// newContext derives the hyperbox geometry from a validated config.
func newContext(cfg Config) *Context {
	d := len(cfg.Lo)
	c := &Context{
		lo:      append([]float64(nil), cfg.Lo...),
		hi:      append([]float64(nil), cfg.Hi...),
		side:    make([]float64, d),
		ordinal: make([]bool, d),
		volume:  1,
	}
	for i := 0; i < d; i++ {
		if cfg.Ordinal != nil && cfg.Ordinal[i] {
			c.ordinal[i] = true
			continue
		}
		c.cont++
		c.side[i] = cfg.Phi * (cfg.Hi[i] - cfg.Lo[i])
		c.volume *= c.side[i]
	}
	return c
}

// Dims returns the dimensionality of the context.
func (c *Context) Dims() int { return len(c.lo) }

// HyperboxSides returns a copy of the per-dimension cell side lengths.
// Ordinal dimensions report zero.
func (c *Context) HyperboxSides() []float64 {
	return append([]float64(nil), c.side...)
}

// HyperboxVolume returns the cell volume over continuous dimensions.
// A context with no continuous dimensions has volume 1.
func (c *Context) HyperboxVolume() float64 { return c.volume }

// Address maps a point to its integer cell address. Continuous
// dimensions bucket by floor((x-lo)/side); a point exactly on the upper
// boundary rounds down into the last cell. Ordinal dimensions carry the
// raw value truncated to an integer.
func (c *Context) Address(point []float64) []int64 {
	addr := make([]int64, len(point))
	for i, x := range point {
		if c.ordinal[i] {
			addr[i] = int64(x)
			continue
		}
		q := (x - c.lo[i]) / c.side[i]
		a := math.Floor(q)
		if x == c.hi[i] && a == q {
			a--
		}
		addr[i] = int64(a)
	}
	return addr
}

// Reachable reports whether two addresses are Moore-adjacent: every
// continuous dimension differs by at most one cell and every ordinal
// dimension matches exactly.
func (c *Context) Reachable(a, b []int64) bool {
	for i := range a {
		d := a[i] - b[i]
		if c.ordinal[i] {
			if d != 0 {
				return false
			}
			continue
		}
		if d < -1 || d > 1 {
			return false
		}
	}
	return true
}

// Direct reports whether two addresses are face-adjacent: Moore-adjacent
// with at most one continuous dimension differing.
func (c *Context) Direct(a, b []int64) bool {
	diff := 0
	for i := range a {
		d := a[i] - b[i]
		if c.ordinal[i] {
			if d != 0 {
				return false
			}
			continue
		}
		switch {
		case d == 0:
		case d == 1 || d == -1:
			diff++
			if diff > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// addrEqual reports componentwise equality of two addresses.
func addrEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
