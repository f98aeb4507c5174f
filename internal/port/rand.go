package port

// Rand is the randomness source used by sampling, planning and
// composition. Injecting it keeps the algorithms deterministic under
// test; production code uses a time-seeded math/rand generator.
type Rand interface {
	// Intn returns a uniform integer in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}
