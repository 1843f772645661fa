package rigfile

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	interpolator "github.com/tphakala/go-pose-interpolator"
	"gonum.org/v1/gonum/floats"
)

// Rig is an interpolator built from a document, together with the
// in-memory host it reads bones from and publishes weights to.
type Rig struct {
	Doc          *Document
	Interpolator *interpolator.Interpolator
	Host         *interpolator.MemoryHost
}

// Build creates the interpolator described by doc. Every pose gets a shape
// key of the same name and is recorded with the tracks set to its frame.
// The returned rig is unbound and left at the first pose's frame.
func Build(doc *Document, logger *slog.Logger) (*Rig, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	h := interpolator.NewMemoryHost()
	config := interpolator.DefaultConfig()
	if doc.Name != "" {
		config.Name = doc.Name
	}
	config.EnableParallel = doc.Parallel
	config.Logger = logger
	config.CurveStore = h.Curves

	ip, err := interpolator.New(config, h.Host())
	if err != nil {
		return nil, err
	}
	r := &Rig{Doc: doc, Interpolator: ip, Host: h}

	if doc.Interpolation != nil {
		if err := applyInterpolation(ip.Settings(), doc.Interpolation); err != nil {
			return nil, fmt.Errorf("interpolation: %w", err)
		}
	}

	for i := range doc.Inputs {
		if err := r.addInput(&doc.Inputs[i]); err != nil {
			return nil, fmt.Errorf("input %q: %w", doc.Inputs[i].Bone, err)
		}
	}

	for i := range doc.Poses {
		if err := r.addPose(&doc.Poses[i]); err != nil {
			return nil, fmt.Errorf("pose %q: %w", doc.Poses[i].Name, err)
		}
	}
	if len(doc.Poses) > 0 {
		r.SetFrame(doc.Poses[0].Frame)
	}
	return r, nil
}

// SetFrame moves every tracked bone to its transform at frame.
func (r *Rig) SetFrame(frame float64) {
	for i := range r.Doc.Bones {
		tr := &r.Doc.Bones[i]
		r.Host.Armature.SetLocalMatrix(r.Doc.armatureOr(tr.Armature), tr.Bone, tr.At(frame))
	}
}

// Sample moves the bones to frame and evaluates the bound interpolator.
func (r *Rig) Sample(ctx context.Context, frame float64) ([]interpolator.Weight, error) {
	r.SetFrame(frame)
	return r.Interpolator.Evaluate(ctx)
}

// Frames returns the frames of the document's sweep. Without a sweep, the
// range spans every key and pose frame with a step of one.
func (r *Rig) Frames() []float64 {
	start, end, step := r.sweep()
	n := int(math.Floor((end-start)/step+sweepSlack)) + 1
	if n <= 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, start+float64(n-1)*step)
}

func (r *Rig) sweep() (start, end, step float64) {
	if s := r.Doc.Sweep; s != nil {
		step = s.Step
		if step == 0 {
			step = defaultSweepStep
		}
		return s.Start, s.End, step
	}

	var frames []float64
	for _, tr := range r.Doc.Bones {
		for _, k := range tr.Keys {
			frames = append(frames, k.Frame)
		}
	}
	for _, p := range r.Doc.Poses {
		frames = append(frames, p.Frame)
	}
	if len(frames) == 0 {
		return 0, 0, defaultSweepStep
	}
	return floats.Min(frames), floats.Max(frames), defaultSweepStep
}

func (r *Rig) addInput(d *Input) error {
	armature := r.Doc.armatureOr(d.Armature)
	var (
		in  *interpolator.Input
		err error
	)
	if d.Handle != "" {
		in, err = r.Interpolator.AddInputWithHandle(d.Handle, armature, d.Bone)
	} else {
		in, err = r.Interpolator.AddInput(armature, d.Bone)
	}
	if err != nil {
		return err
	}

	if err := parseAxes(d.Location, &in.UseLocation); err != nil {
		return err
	}
	if err := parseAxes(d.Scale, &in.UseScale); err != nil {
		return err
	}
	in.UseRotation = d.Rotation
	if d.Mode != "" {
		if in.RotationMode, err = interpolator.ParseRotationMode(d.Mode); err != nil {
			return err
		}
	}
	if d.Axis != "" {
		if in.RotationAxis, err = interpolator.ParseAxis(d.Axis); err != nil {
			return err
		}
	}
	return nil
}

func (r *Rig) addPose(d *Pose) error {
	r.Host.ShapeKeys.Add(d.Name)
	r.SetFrame(d.Frame)
	p, err := r.Interpolator.AddPose(d.Name)
	if err != nil {
		return err
	}
	if d.RangeMin != nil {
		p.RangeMin = *d.RangeMin
	}
	if d.RangeMax != nil {
		p.RangeMax = *d.RangeMax
	}
	if d.Clamp != nil {
		p.Clamp = *d.Clamp
	}
	if d.Interpolation != nil {
		p.UseInterpolation = true
		if err := applyInterpolation(&p.Settings, d.Interpolation); err != nil {
			return err
		}
	}
	return nil
}

// applyInterpolation applies easing, then kind, then custom points, so a
// document naming both kind and points ends up CUSTOM.
func applyInterpolation(s *interpolator.InterpolationSettings, d *Interpolation) error {
	if d.Easing != "" {
		easing, err := interpolator.ParseEasing(d.Easing)
		if err != nil {
			return err
		}
		if err := s.SetEasing(easing); err != nil {
			return err
		}
	}
	if d.Kind != "" {
		kind, err := interpolator.ParseInterpolation(d.Kind)
		if err != nil {
			return err
		}
		if err := s.SetInterpolation(kind); err != nil {
			return err
		}
	}
	if len(d.Points) == 0 {
		return nil
	}

	pts := make([]interpolator.CurvePoint, len(d.Points))
	for i, p := range d.Points {
		pts[i] = interpolator.CurvePoint{X: p.X, Y: p.Y}
		if p.Handle != "" {
			handle, err := interpolator.ParseHandleType(p.Handle)
			if err != nil {
				return err
			}
			pts[i].Handle = handle
		}
	}
	return s.SetCurvePoints(pts)
}

func parseAxes(names []string, dst *[3]bool) error {
	for _, name := range names {
		a, err := interpolator.ParseAxis(name)
		if err != nil {
			return err
		}
		dst[a] = true
	}
	return nil
}
