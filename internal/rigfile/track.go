package rigfile

import (
	"sort"

	"github.com/tphakala/go-pose-interpolator/internal/mathutil"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// At returns the bone's local transform at frame. Location and scale are
// interpolated linearly and rotation spherically between the surrounding
// keys; frames outside the keyed range hold the nearest key.
func (tr *Track) At(frame float64) mathutil.Mat4 {
	keys := tr.Keys
	if len(keys) == 0 {
		return mathutil.Mat4Identity()
	}
	if frame <= keys[0].Frame {
		return keys[0].matrix()
	}
	last := len(keys) - 1
	if frame >= keys[last].Frame {
		return keys[last].matrix()
	}

	// First key strictly after frame.
	hi := sort.Search(len(keys), func(i int) bool { return keys[i].Frame > frame })
	a, b := &keys[hi-1], &keys[hi]
	t := (frame - a.Frame) / (b.Frame - a.Frame)

	loc := lerpVec(a.location(), b.location(), t)
	rot := mathutil.QuatSlerp(a.rotation(), b.rotation(), t)
	scale := lerpVec(a.scale(), b.scale(), t)
	return mathutil.LocRotScale(loc, rot, scale)
}

func (k *Keyframe) matrix() mathutil.Mat4 {
	return mathutil.LocRotScale(k.location(), k.rotation(), k.scale())
}

func (k *Keyframe) location() r3.Vec {
	return vecOr(k.Location, r3.Vec{})
}

func (k *Keyframe) rotation() quat.Number {
	e := vecOr(k.Rotation, r3.Vec{})
	return mathutil.QuatFromEuler(r3.Scale(degToRad, e))
}

func (k *Keyframe) scale() r3.Vec {
	return vecOr(k.Scale, r3.Vec{X: 1, Y: 1, Z: 1})
}

func vecOr(v []float64, def r3.Vec) r3.Vec {
	if len(v) != 3 {
		return def
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
