package interpolator

// Default names
const (
	// DefaultName is the name given to interpolators created without one.
	DefaultName = "PoseInterpolator"

	// DefaultPoseName is the base name of newly added poses.
	DefaultPoseName = "Pose"

	// RestPoseName is the pose created alongside a new interpolator.
	RestPoseName = "Rest"
)

// Pose range defaults
const (
	defaultRangeMin = 0.0
	defaultRangeMax = 1.0
)

// Naming
const (
	// uniqueNameFormat suffixes a base name with a zero-padded counter.
	uniqueNameFormat = "%s.%03d"

	// entrySeparator joins an interpolator handle and a pose name into a
	// weight sink entry ID.
	entrySeparator = "/"
)
