package dataset

import (
	"math"
	"math/rand"
)

// TwoBlobs generates n samples alternating between two Gaussian blobs
// centered at (1.5, 1.5) and (8.5, 8.5) with the given standard
// deviation, inside a [0, 10] square.
func TwoBlobs(n int, sigma float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	for i := range X {
		cx, cy := 1.5, 1.5
		if i%2 == 1 {
			cx, cy = 8.5, 8.5
		}
		X[i] = []float64{cx + sigma*rng.NormFloat64(), cy + sigma*rng.NormFloat64()}
	}
	return X
}

// Circles generates n samples on two concentric rings of radius 1 and
// factor, centered at the origin, with independent Gaussian noise added
// to each coordinate.
func Circles(n int, factor, noise float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	for i := range X {
		r := 1.0
		if i%2 == 1 {
			r = factor
		}
		theta := 2 * math.Pi * rng.Float64()
		X[i] = []float64{
			r*math.Cos(theta) + noise*rng.NormFloat64(),
			r*math.Sin(theta) + noise*rng.NormFloat64(),
		}
	}
	return X
}

// Uniform generates n samples uniform in the unit square.
func Uniform(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	for i := range X {
		X[i] = []float64{rng.Float64(), rng.Float64()}
	}
	return X
}

// Drift generates a stream whose generating process moves: the first
// half clusters around (2, 2), the second half around (8, 8).
func Drift(n int, sigma float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	for i := range X {
		cx, cy := 2.0, 2.0
		if i >= n/2 {
			cx, cy = 8.0, 8.0
		}
		X[i] = []float64{cx + sigma*rng.NormFloat64(), cy + sigma*rng.NormFloat64()}
	}
	return X
}
