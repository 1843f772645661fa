package engine

// Radius constants
const (
	// minRadius floors a pose's falloff radius so coincident poses do not
	// divide by zero.
	minRadius = 1e-5
)

// Parallel evaluation constants
const (
	// minParallelPoses is the smallest pose count worth fanning out.
	minParallelPoses = 2
)
