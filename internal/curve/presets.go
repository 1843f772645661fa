package curve

import (
	"slices"
	"strings"
)

// Preset names. Non-linear presets are keyed "<KIND>_<EASING>".
const (
	PresetLinear = "LINEAR"
)

// presets holds the literal control points for each named preset.
// Each entry spans (0,0) to (1,1).
var presets = map[string][]Point{
	"LINEAR": {
		{0.0, 0.0, HandleVector},
		{1.0, 1.0, HandleVector},
	},
	"SINE_EASE_IN": {
		{0.0, 0.0, HandleAuto},
		{0.1, 0.03, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"SINE_EASE_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.9, 0.97, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"SINE_EASE_IN_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.1, 0.03, HandleAutoClamped},
		{0.9, 0.97, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUAD_EASE_IN": {
		{0.0, 0.0, HandleAuto},
		{0.15, 0.045, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUAD_EASE_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.85, 0.955, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUAD_EASE_IN_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.15, 0.045, HandleAutoClamped},
		{0.85, 0.955, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"CUBIC_EASE_IN": {
		{0.0, 0.0, HandleAuto},
		{0.2, 0.03, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"CUBIC_EASE_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.8, 0.97, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"CUBIC_EASE_IN_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.2, 0.03, HandleAutoClamped},
		{0.8, 0.97, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUART_EASE_IN": {
		{0.0, 0.0, HandleAuto},
		{0.25, 0.03, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUART_EASE_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.75, 0.97, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUART_EASE_IN_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.25, 0.03, HandleAutoClamped},
		{0.75, 0.97, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUINT_EASE_IN": {
		{0.0, 0.0, HandleAuto},
		{0.275, 0.025, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUINT_EASE_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.725, 0.975, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
	"QUINT_EASE_IN_OUT": {
		{0.0, 0.0, HandleAuto},
		{0.275, 0.025, HandleAutoClamped},
		{0.725, 0.975, HandleAutoClamped},
		{1.0, 1.0, HandleAuto},
	},
}

// PresetKey returns the preset name for an interpolation kind and easing,
// e.g. ("CUBIC", "EASE_OUT") -> "CUBIC_EASE_OUT". LINEAR ignores easing.
func PresetKey(kind, easing string) string {
	kind = strings.ToUpper(kind)
	if kind == PresetLinear {
		return PresetLinear
	}
	return kind + "_" + strings.ToUpper(easing)
}

// Preset returns a copy of the named preset's control points.
func Preset(name string) ([]Point, bool) {
	pts, ok := presets[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(pts), true
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
