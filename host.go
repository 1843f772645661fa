package interpolator

// TransformSource resolves bone local transforms.
type TransformSource interface {
	// LocalMatrix returns the bone's transform in its local space.
	// ok is false if the armature or bone does not exist.
	LocalMatrix(armature, bone string) (m Mat4, ok bool)
}

// ShapeKeys resolves shape keys by name.
type ShapeKeys interface {
	HasShapeKey(name string) bool
}

// ShapeKeyRenamer is implemented by ShapeKeys that can rename a key.
// RenamePose uses it to keep the pose and its shape key in step.
type ShapeKeyRenamer interface {
	RenameShapeKey(oldName, newName string) error
}

// WeightSink receives computed pose weights.
type WeightSink interface {
	// SetWeight publishes the weight of shapeKey under the given entry ID.
	// Entry IDs have the form "<interpolator handle>/<pose name>".
	SetWeight(entry, shapeKey string, weight float64) error

	// RemoveEntries drops every entry whose ID starts with prefix and
	// returns how many were removed.
	RemoveEntries(prefix string) int
}

// CurveStore persists curve control points by curve handle.
type CurveStore interface {
	LoadCurve(handle string) ([]CurvePoint, bool)
	SaveCurve(handle string, points []CurvePoint) error
	DeleteCurve(handle string)
}
