package interpolator

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryArmature is an in-memory TransformSource keyed by armature and bone.
type MemoryArmature struct {
	mu    sync.RWMutex
	bones map[string]map[string]Mat4
}

// NewMemoryArmature returns an empty armature store.
func NewMemoryArmature() *MemoryArmature {
	return &MemoryArmature{bones: make(map[string]map[string]Mat4)}
}

// SetLocalMatrix sets (or creates) a bone's local transform.
func (a *MemoryArmature) SetLocalMatrix(armature, bone string, m Mat4) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bones[armature] == nil {
		a.bones[armature] = make(map[string]Mat4)
	}
	a.bones[armature][bone] = m
}

// RemoveBone deletes a bone.
func (a *MemoryArmature) RemoveBone(armature, bone string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.bones[armature], bone)
}

// LocalMatrix implements TransformSource.
func (a *MemoryArmature) LocalMatrix(armature, bone string) (Mat4, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.bones[armature][bone]
	return m, ok
}

// Bones returns the sorted bone names of an armature.
func (a *MemoryArmature) Bones(armature string) []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Sorted(maps.Keys(a.bones[armature]))
}

// MemoryShapeKeys is an in-memory ShapeKeys set that also supports renaming.
type MemoryShapeKeys struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewMemoryShapeKeys returns a set holding the given names.
func NewMemoryShapeKeys(names ...string) *MemoryShapeKeys {
	k := &MemoryShapeKeys{keys: make(map[string]struct{}, len(names))}
	for _, n := range names {
		k.keys[n] = struct{}{}
	}
	return k
}

// Add inserts shape key names.
func (k *MemoryShapeKeys) Add(names ...string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, n := range names {
		k.keys[n] = struct{}{}
	}
}

// Remove deletes a shape key.
func (k *MemoryShapeKeys) Remove(name string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.keys, name)
}

// HasShapeKey implements ShapeKeys.
func (k *MemoryShapeKeys) HasShapeKey(name string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.keys[name]
	return ok
}

// RenameShapeKey implements ShapeKeyRenamer. Renaming a missing key is a
// no-op.
func (k *MemoryShapeKeys) RenameShapeKey(oldName, newName string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.keys[oldName]; !ok {
		return nil
	}
	if _, taken := k.keys[newName]; taken && newName != oldName {
		return fmt.Errorf("%w: shape key %q", ErrDuplicateName, newName)
	}
	delete(k.keys, oldName)
	k.keys[newName] = struct{}{}
	return nil
}

// SinkEntry is one published weight.
type SinkEntry struct {
	ShapeKey string
	Weight   float64
}

// MemorySink is an in-memory WeightSink.
type MemorySink struct {
	mu      sync.RWMutex
	entries map[string]SinkEntry
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{entries: make(map[string]SinkEntry)}
}

// SetWeight implements WeightSink.
func (s *MemorySink) SetWeight(entry, shapeKey string, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry] = SinkEntry{ShapeKey: shapeKey, Weight: weight}
	return nil
}

// RemoveEntries implements WeightSink.
func (s *MemorySink) RemoveEntries(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id := range s.entries {
		if strings.HasPrefix(id, prefix) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Weight returns the last weight published for a shape key by any entry.
func (s *MemorySink) Weight(shapeKey string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range slices.Sorted(maps.Keys(s.entries)) {
		if e := s.entries[id]; e.ShapeKey == shapeKey {
			return e.Weight, true
		}
	}
	return 0, false
}

// Entries returns a copy of all entries keyed by entry ID.
func (s *MemorySink) Entries() map[string]SinkEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.entries)
}

// Len returns the number of entries.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// MemoryCurveStore is an in-memory CurveStore.
type MemoryCurveStore struct {
	mu     sync.RWMutex
	curves map[string][]CurvePoint
}

// NewMemoryCurveStore returns an empty curve store.
func NewMemoryCurveStore() *MemoryCurveStore {
	return &MemoryCurveStore{curves: make(map[string][]CurvePoint)}
}

// LoadCurve implements CurveStore.
func (c *MemoryCurveStore) LoadCurve(handle string) ([]CurvePoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pts, ok := c.curves[handle]
	return slices.Clone(pts), ok
}

// SaveCurve implements CurveStore.
func (c *MemoryCurveStore) SaveCurve(handle string, points []CurvePoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.curves[handle] = slices.Clone(points)
	return nil
}

// DeleteCurve implements CurveStore.
func (c *MemoryCurveStore) DeleteCurve(handle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.curves, handle)
}

// Handles returns the sorted handles of all stored curves.
func (c *MemoryCurveStore) Handles() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.curves))
}
