package interpolator

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/tphakala/go-pose-interpolator/internal/engine"
)

// Interpolator drives one shape key per pose from the live transforms of a
// set of input bones.
//
// Inputs and poses can only be added, removed, reordered or re-recorded
// while the interpolator is unbound. Evaluate is safe for concurrent use.
type Interpolator struct {
	mu sync.RWMutex

	handle string
	name   string
	config Config
	host   Host
	logger *slog.Logger

	inputs   []*Input
	poses    []*Pose
	settings InterpolationSettings

	snap  *engine.Snapshot
	bound []boundInput
}

// boundInput is the bone lookup of an input captured at bind time.
type boundInput struct {
	name     string
	armature string
	bone     string
}

// New creates an empty interpolator.
func New(config *Config, host Host) (*Interpolator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := host.Validate(); err != nil {
		return nil, err
	}
	ip := &Interpolator{
		handle: uuid.NewString(),
		name:   config.Name,
		config: *config,
		host:   host,
	}
	ip.logger = config.logger().With("interpolator", config.Name)
	return ip, nil
}

// Handle returns the interpolator's unique handle.
func (ip *Interpolator) Handle() string { return ip.handle }

// Name returns the interpolator's display name.
func (ip *Interpolator) Name() string {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	return ip.name
}

func (ip *Interpolator) setName(name string) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ip.name = name
}

// Settings returns the default curve settings shared by poses that do not
// override them. The settings are not guarded by the interpolator's lock;
// do not modify them while Bind or Evaluate are running.
func (ip *Interpolator) Settings() *InterpolationSettings { return &ip.settings }

// IsBound reports whether the interpolator is bound.
func (ip *Interpolator) IsBound() bool {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	return ip.snap != nil
}

// Inputs returns the inputs in order.
func (ip *Interpolator) Inputs() []*Input {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	return slices.Clone(ip.inputs)
}

// Input returns the input with the given handle.
func (ip *Interpolator) Input(handle string) (*Input, bool) {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	i := ip.inputIndex(handle)
	if i < 0 {
		return nil, false
	}
	return ip.inputs[i], true
}

// Poses returns the poses in order.
func (ip *Interpolator) Poses() []*Pose {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	return slices.Clone(ip.poses)
}

// Pose returns the pose with the given name.
func (ip *Interpolator) Pose(name string) (*Pose, bool) {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	i := ip.poseIndex(name)
	if i < 0 {
		return nil, false
	}
	return ip.poses[i], true
}

// AddInput adds an input for a bone with a fresh handle and records the
// bone's current transform into every pose.
func (ip *Interpolator) AddInput(armature, bone string) (*Input, error) {
	return ip.AddInputWithHandle(uuid.NewString(), armature, bone)
}

// AddInputWithHandle is like AddInput with a caller-supplied handle, used
// when restoring saved rigs.
func (ip *Interpolator) AddInputWithHandle(handle, armature, bone string) (*Input, error) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if err := ip.checkUnbound(); err != nil {
		return nil, err
	}
	if handle == "" {
		return nil, fmt.Errorf("%w: empty handle", ErrInvalidInput)
	}
	if ip.inputIndex(handle) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateHandle, handle)
	}

	in := newInput(handle, armature, bone)
	ip.inputs = append(ip.inputs, in)
	m := in.matrix(ip.host.Transforms)
	for _, p := range ip.poses {
		p.data = append(p.data, &PoseData{inputHandle: handle, Matrix: m})
	}
	return in, nil
}

// RemoveInput deletes an input and its recorded data in every pose.
func (ip *Interpolator) RemoveInput(handle string) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if err := ip.checkUnbound(); err != nil {
		return err
	}
	i := ip.inputIndex(handle)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownInput, handle)
	}
	ip.inputs = slices.Delete(ip.inputs, i, i+1)
	for _, p := range ip.poses {
		if j := p.dataIndex(handle); j >= 0 {
			p.data = slices.Delete(p.data, j, j+1)
		}
	}
	return nil
}

// MoveInput moves the input at index from to index to.
func (ip *Interpolator) MoveInput(from, to int) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if err := ip.checkUnbound(); err != nil {
		return err
	}
	if !move(ip.inputs, from, to) {
		return fmt.Errorf("%w: index %d to %d out of range", ErrUnknownInput, from, to)
	}
	return nil
}

// AvailableBones filters bones down to those not yet used as an input on
// the given armature.
func (ip *Interpolator) AvailableBones(armature string, bones []string) []string {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	used := make(map[string]bool, len(ip.inputs))
	for _, in := range ip.inputs {
		if in.Armature == armature {
			used[in.Bone] = true
		}
	}
	out := make([]string, 0, len(bones))
	for _, b := range bones {
		if !used[b] {
			out = append(out, b)
		}
	}
	return out
}

// AddPose adds a pose recording the current transform of every input. The
// name gets a numeric suffix if it is already taken.
func (ip *Interpolator) AddPose(name string) (*Pose, error) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if err := ip.checkUnbound(); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultPoseName
	}
	p := newPose(uniqueName(name, func(n string) bool { return ip.poseIndex(n) >= 0 }))
	p.data = make([]*PoseData, len(ip.inputs))
	for i, in := range ip.inputs {
		p.data[i] = &PoseData{inputHandle: in.handle, Matrix: in.matrix(ip.host.Transforms)}
	}
	ip.poses = append(ip.poses, p)
	return p, nil
}

// RemovePose deletes a pose and its stored curve.
func (ip *Interpolator) RemovePose(name string) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if err := ip.checkUnbound(); err != nil {
		return err
	}
	i := ip.poseIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPose, name)
	}
	ip.poses[i].Settings.drop(ip.config.CurveStore)
	ip.poses = slices.Delete(ip.poses, i, i+1)
	return nil
}

// MovePose moves the pose at index from to index to.
func (ip *Interpolator) MovePose(from, to int) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if err := ip.checkUnbound(); err != nil {
		return err
	}
	if !move(ip.poses, from, to) {
		return fmt.Errorf("%w: index %d to %d out of range", ErrUnknownPose, from, to)
	}
	return nil
}

// RenamePose renames a pose. If the shape keys support renaming, the pose's
// shape key is renamed with it.
func (ip *Interpolator) RenamePose(oldName, newName string) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if err := ip.checkUnbound(); err != nil {
		return err
	}
	i := ip.poseIndex(oldName)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPose, oldName)
	}
	if newName == oldName {
		return nil
	}
	if newName == "" {
		return fmt.Errorf("%w: empty pose name", ErrInvalidPose)
	}
	if ip.poseIndex(newName) >= 0 {
		return fmt.Errorf("%w: pose %q", ErrDuplicateName, newName)
	}
	if r, ok := ip.host.ShapeKeys.(ShapeKeyRenamer); ok {
		if err := r.RenameShapeKey(oldName, newName); err != nil {
			return err
		}
	}
	ip.poses[i].name = newName
	return nil
}

// UpdatePose re-records the current transform of every input into a pose.
func (ip *Interpolator) UpdatePose(name string) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if err := ip.checkUnbound(); err != nil {
		return err
	}
	i := ip.poseIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPose, name)
	}
	p := ip.poses[i]
	for _, in := range ip.inputs {
		if d, ok := p.DataFor(in.handle); ok {
			d.Matrix = in.matrix(ip.host.Transforms)
		}
	}
	return nil
}

// Prune removes pose data whose input no longer exists and returns how many
// entries were removed.
func (ip *Interpolator) Prune() int {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	n := 0
	for _, p := range ip.poses {
		before := len(p.data)
		p.data = slices.DeleteFunc(p.data, func(d *PoseData) bool {
			return ip.inputIndex(d.inputHandle) < 0
		})
		n += before - len(p.data)
	}
	return n
}

// SaveCurves writes every created curve to the configured curve store.
func (ip *Interpolator) SaveCurves() error {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	store := ip.config.CurveStore
	if err := ip.settings.save(store); err != nil {
		return fmt.Errorf("%w: default curve: %w", ErrInvalidCurve, err)
	}
	for _, p := range ip.poses {
		if err := p.Settings.save(store); err != nil {
			return fmt.Errorf("%w: pose %q: %w", ErrInvalidCurve, p.name, err)
		}
	}
	return nil
}

// dropCurves deletes every curve of the interpolator from the store.
func (ip *Interpolator) dropCurves() {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	ip.settings.drop(ip.config.CurveStore)
	for _, p := range ip.poses {
		p.Settings.drop(ip.config.CurveStore)
	}
}

func (ip *Interpolator) checkUnbound() error {
	if ip.snap != nil {
		return ErrStructuralChangeWhileBound
	}
	return nil
}

func (ip *Interpolator) inputIndex(handle string) int {
	return slices.IndexFunc(ip.inputs, func(in *Input) bool { return in.handle == handle })
}

func (ip *Interpolator) poseIndex(name string) int {
	return slices.IndexFunc(ip.poses, func(p *Pose) bool { return p.name == name })
}

// move relocates s[from] to index to, shifting the elements between.
func move[T any](s []T, from, to int) bool {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return false
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
	return true
}

// uniqueName returns base, or base.001, base.002, ... whichever is free.
func uniqueName(base string, taken func(string) bool) string {
	name := base
	for i := 1; taken(name); i++ {
		name = fmt.Sprintf(uniqueNameFormat, base, i)
	}
	return name
}
