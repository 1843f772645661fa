package curve

// Curve domain limits
const (
	domainMin = 0.0
	domainMax = 1.0
)

// Tangent constants
const (
	// fritschCarlsonLimit bounds |m|/|δ| for a monotone cubic Hermite segment.
	fritschCarlsonLimit = 3.0

	// segmentEpsilon is the minimum X spacing treated as a real segment.
	segmentEpsilon = 1e-12

	// Hermite basis polynomial coefficients
	hermiteTwo   = 2.0
	hermiteThree = 3.0
)

// minPoints is the minimum number of control points of a valid mapping.
const minPoints = 2
