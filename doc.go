// Package interpolator drives shape keys from bone poses.
//
// An animator records named reference poses of a set of input bones and
// sculpts one shape key per pose. At runtime the interpolator compares the
// live bone transforms with every recorded pose and publishes, for each pose,
// a weight that expresses how close the live pose is to it.
//
// # Features
//
//   - Location, scale, euler angle, swing and twist channels per input bone
//   - Per-channel normalization so channels of different units combine fairly
//   - Falloff curves with LINEAR and SINE/QUAD/CUBIC/QUART/QUINT easing
//     presets or custom control points, per interpolator or per pose
//   - Output range remapping and clamping per pose
//   - Optional concurrent pose evaluation
//   - Host-agnostic: bones, shape keys, weights and curve storage are reached
//     through small interfaces, with in-memory implementations included
//
// # Quick Start
//
//	ip, host, err := interpolator.NewInMemory("Elbow")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	host.ShapeKeys.Add("Rest", "Bent")
//	host.Armature.SetLocalMatrix("Armature", "forearm", interpolator.IdentityMatrix())
//
//	in, _ := ip.AddInput("Armature", "forearm")
//	in.UseRotation = true
//
//	ip.AddPose("Rest")
//	host.Armature.SetLocalMatrix("Armature", "forearm", bentMatrix)
//	ip.AddPose("Bent")
//
//	if err := ip.Bind(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer ip.Unbind(ctx)
//
//	// Every frame:
//	weights, err := ip.Evaluate(ctx)
//
// # Weights
//
// Each channel's recorded samples are divided by the sum of their squares at
// bind time, and live values are scaled the same way. A pose's distance to
// the live pose is the Euclidean distance over all channels of all inputs.
// Each pose gets a falloff radius equal to the distance to its nearest
// neighbouring pose; the proximity 1 - distance/radius is mapped through the
// pose's curve and then into [RangeMin, RangeMax]. Weights are independent
// per pose and do not sum to one.
//
// # Binding
//
// [Interpolator.Bind] captures the recorded data and registers one weight
// sink entry per pose. While bound, inputs and poses cannot be added,
// removed, reordered or re-recorded; such calls fail with
// [ErrStructuralChangeWhileBound]. [Interpolator.Unbind] removes the entries.
//
// # Thread Safety
//
// [Interpolator.Evaluate] only reads bound state and may be called from
// several goroutines at once. Other methods serialize on the interpolator.
// Separate interpolators share nothing.
package interpolator
