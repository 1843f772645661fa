package rigfile

import "math"

// Document defaults
const (
	// DefaultArmature names the armature used by tracks and inputs that do
	// not name one.
	DefaultArmature = "Armature"

	// defaultSweepStep is the frame step when a sweep gives none.
	defaultSweepStep = 1.0

	// sweepSlack absorbs rounding when counting sweep frames.
	sweepSlack = 1e-9
)

// degToRad converts document rotations, which are in degrees.
const degToRad = math.Pi / 180

// Supported document formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)
