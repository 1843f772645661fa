package mathutil

// Normalization constants
const (
	// normalizeTolerance is the absolute tolerance under which a sum of
	// squares is treated as zero by Normalize.
	normalizeTolerance = 1e-5

	// degenerateNorm is returned by Normalize for all-zero vectors.
	degenerateNorm = 1.0
)

// Matrix decomposition constants
const (
	mat4Size = 16 // Elements in a 4×4 matrix
	mat4Dim  = 4  // Row/column count of a 4×4 matrix

	// gimbalThreshold is the cos(y) value under which euler extraction
	// falls back to the gimbal-locked branch.
	gimbalThreshold = 1e-9

	// scaleEpsilon guards against division by a zero-length basis vector.
	scaleEpsilon = 1e-12
)

// Quaternion constants
const (
	quatShepperdQuarter = 0.25 // 1/4 factor in Shepperd's method
	quatShepperdTwo     = 2.0  // Scale factor for the Shepperd square root
	twistSampleScale    = 2.0  // Twist samples are 2*sin(half angle)
	halfAngleDivisor    = 2.0  // Divisor for half angles

	// slerpLinearThreshold is the cosine above which slerp degrades to lerp.
	slerpLinearThreshold = 0.9995
)
