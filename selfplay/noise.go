package selfplay

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseFunc draws n weights that sum to 1.
type NoiseFunc func(alpha float64, n int, rng *rand.Rand) []float64

// DirichletNoise samples a symmetric Dirichlet(alpha) vector as normalised Gamma(alpha, 1) draws.
func DirichletNoise(alpha float64, n int, rng *rand.Rand) []float64 {
	gamma := distuv.Gamma{Alpha: alpha, Beta: 1, Src: rng}
	noise := make([]float64, n)
	for i := range noise {
		noise[i] = gamma.Rand()
	}

	sum := floats.Sum(noise)
	if sum == 0 { // every draw underflowed
		for i := range noise {
			noise[i] = 1.0 / float64(n)
		}
		return noise
	}
	floats.Scale(1/sum, noise)
	return noise
}

// blend mixes noise into probs in place: probs·(1-weight) + noise·weight.
func blend(probs, noise []float64, weight float64) {
	floats.Scale(1-weight, probs)
	floats.AddScaled(probs, weight, noise)
}

// sample draws an index with probability probs[i].
func sample(probs []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	last := 0
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		last = i
		cumulative += p
		if sampled < cumulative {
			return i
		}
	}
	return last // Fallback in case of rounding errors
}
