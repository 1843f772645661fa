// Package rigfile loads pose interpolator rigs from TOML, JSON or YAML
// documents and builds them against in-memory host adapters.
//
// A rig document describes animated bones as keyframe tracks, the inputs
// that read them, and the poses, each recorded at one frame of the tracks:
//
//	name = "Elbow"
//
//	[[bones]]
//	bone = "forearm"
//	keys = [
//	  { frame = 0,  rotation = [0, 0, 0] },
//	  { frame = 10, rotation = [90, 0, 0] },
//	]
//
//	[[inputs]]
//	bone = "forearm"
//	rotation = true
//
//	[[poses]]
//	name = "Rest"
//	frame = 0
//
//	[[poses]]
//	name = "Bent"
//	frame = 10
package rigfile

import (
	"errors"
	"fmt"
	"math"
)

// Common errors returned by the rigfile package.
var (
	// ErrInvalidDocument indicates a rig document that fails validation.
	ErrInvalidDocument = errors.New("invalid rig document")

	// ErrUnknownFormat indicates a format name that is not toml, json or yaml.
	ErrUnknownFormat = errors.New("unknown rig document format")
)

// Document is a rig description.
type Document struct {
	Name     string `toml:"name" json:"name" yaml:"name"`
	Parallel bool   `toml:"parallel" json:"parallel" yaml:"parallel"`
	// Armature is the default armature of tracks and inputs.
	Armature string `toml:"armature" json:"armature" yaml:"armature"`

	Interpolation *Interpolation `toml:"interpolation" json:"interpolation" yaml:"interpolation"`

	Bones  []Track `toml:"bones" json:"bones" yaml:"bones"`
	Inputs []Input `toml:"inputs" json:"inputs" yaml:"inputs"`
	Poses  []Pose  `toml:"poses" json:"poses" yaml:"poses"`
	Sweep  *Sweep  `toml:"sweep" json:"sweep" yaml:"sweep"`
}

// Track animates one bone.
type Track struct {
	Armature string     `toml:"armature" json:"armature" yaml:"armature"`
	Bone     string     `toml:"bone" json:"bone" yaml:"bone"`
	Keys     []Keyframe `toml:"keys" json:"keys" yaml:"keys"`
}

// Keyframe is a bone transform at one frame. Omitted components default to
// zero location, zero rotation and unit scale.
type Keyframe struct {
	Frame    float64   `toml:"frame" json:"frame" yaml:"frame"`
	Location []float64 `toml:"location" json:"location" yaml:"location"`
	// Rotation is XYZ euler angles in degrees.
	Rotation []float64 `toml:"rotation" json:"rotation" yaml:"rotation"`
	Scale    []float64 `toml:"scale" json:"scale" yaml:"scale"`
}

// Input describes one interpolator input. Location and Scale list the
// enabled axes ("X", "Y", "Z").
type Input struct {
	Handle   string   `toml:"handle" json:"handle" yaml:"handle"`
	Armature string   `toml:"armature" json:"armature" yaml:"armature"`
	Bone     string   `toml:"bone" json:"bone" yaml:"bone"`
	Location []string `toml:"location" json:"location" yaml:"location"`
	Rotation bool     `toml:"rotation" json:"rotation" yaml:"rotation"`
	Mode     string   `toml:"mode" json:"mode" yaml:"mode"`
	Axis     string   `toml:"axis" json:"axis" yaml:"axis"`
	Scale    []string `toml:"scale" json:"scale" yaml:"scale"`
}

// Interpolation selects a falloff curve. Points, when present, switch the
// curve to CUSTOM.
type Interpolation struct {
	Kind   string       `toml:"kind" json:"kind" yaml:"kind"`
	Easing string       `toml:"easing" json:"easing" yaml:"easing"`
	Points []CurvePoint `toml:"points" json:"points" yaml:"points"`
}

// CurvePoint is a curve control point. Handle defaults to AUTO.
type CurvePoint struct {
	X      float64 `toml:"x" json:"x" yaml:"x"`
	Y      float64 `toml:"y" json:"y" yaml:"y"`
	Handle string  `toml:"handle" json:"handle" yaml:"handle"`
}

// Pose is recorded from the tracks at Frame. Nil fields keep the
// interpolator defaults.
type Pose struct {
	Name          string         `toml:"name" json:"name" yaml:"name"`
	Frame         float64        `toml:"frame" json:"frame" yaml:"frame"`
	RangeMin      *float64       `toml:"range_min" json:"range_min" yaml:"range_min"`
	RangeMax      *float64       `toml:"range_max" json:"range_max" yaml:"range_max"`
	Clamp         *bool          `toml:"clamp" json:"clamp" yaml:"clamp"`
	Interpolation *Interpolation `toml:"interpolation" json:"interpolation" yaml:"interpolation"`
}

// Sweep is the frame range evaluated by batch tools.
type Sweep struct {
	Start float64 `toml:"start" json:"start" yaml:"start"`
	End   float64 `toml:"end" json:"end" yaml:"end"`
	Step  float64 `toml:"step" json:"step" yaml:"step"`
}

// Validate checks the document for structural errors. Curve kinds, axes and
// modes are checked when the rig is built.
func (d *Document) Validate() error {
	if len(d.Inputs) == 0 {
		return fmt.Errorf("%w: no inputs", ErrInvalidDocument)
	}
	for i, in := range d.Inputs {
		if in.Bone == "" {
			return fmt.Errorf("%w: input %d has no bone", ErrInvalidDocument, i)
		}
	}

	tracks := make(map[[2]string]bool, len(d.Bones))
	for _, tr := range d.Bones {
		if tr.Bone == "" {
			return fmt.Errorf("%w: track has no bone", ErrInvalidDocument)
		}
		key := [2]string{d.armatureOr(tr.Armature), tr.Bone}
		if tracks[key] {
			return fmt.Errorf("%w: duplicate track for bone %q", ErrInvalidDocument, tr.Bone)
		}
		tracks[key] = true
		if err := tr.validate(); err != nil {
			return err
		}
	}

	names := make(map[string]bool, len(d.Poses))
	for i, p := range d.Poses {
		if p.Name == "" {
			return fmt.Errorf("%w: pose %d has no name", ErrInvalidDocument, i)
		}
		if names[p.Name] {
			return fmt.Errorf("%w: duplicate pose %q", ErrInvalidDocument, p.Name)
		}
		names[p.Name] = true
	}

	if s := d.Sweep; s != nil {
		if !isFinite(s.Start) || !isFinite(s.End) || s.End < s.Start {
			return fmt.Errorf("%w: sweep [%v, %v]", ErrInvalidDocument, s.Start, s.End)
		}
		if s.Step < 0 || !isFinite(s.Step) {
			return fmt.Errorf("%w: sweep step %v", ErrInvalidDocument, s.Step)
		}
	}
	return nil
}

func (tr *Track) validate() error {
	if len(tr.Keys) == 0 {
		return fmt.Errorf("%w: track %q has no keys", ErrInvalidDocument, tr.Bone)
	}
	for i, k := range tr.Keys {
		if !isFinite(k.Frame) {
			return fmt.Errorf("%w: track %q key %d frame %v", ErrInvalidDocument, tr.Bone, i, k.Frame)
		}
		if i > 0 && k.Frame <= tr.Keys[i-1].Frame {
			return fmt.Errorf("%w: track %q keys not in increasing frame order", ErrInvalidDocument, tr.Bone)
		}
		for _, v := range [][]float64{k.Location, k.Rotation, k.Scale} {
			if len(v) != 0 && len(v) != 3 {
				return fmt.Errorf("%w: track %q key %d needs 3 components", ErrInvalidDocument, tr.Bone, i)
			}
		}
	}
	return nil
}

func (d *Document) armatureOr(name string) string {
	if name != "" {
		return name
	}
	if d.Armature != "" {
		return d.Armature
	}
	return DefaultArmature
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
