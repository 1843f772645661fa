package channel

// degenerateSpread is the largest sample spread across poses for which a
// swing component is treated as constant and dropped.
const degenerateSpread = 1e-9

// Channel IDs. Location, swing and scale IDs carry the axis letter as suffix.
const (
	idLocationPrefix = "l"
	idSwingPrefix    = "d"
	idScalePrefix    = "s"
	idAngle          = "a"
	idTwist          = "tw"
)
