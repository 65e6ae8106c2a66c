// Package particle provides the value notation shared by the fireworks
// configuration files.
//
// Shell catalogs and behaviour profiles describe their tunables as short
// strings instead of nested YAML maps:
//   - Fixed values: "150"
//   - Ranges: "[5 9]" (random value between min and max)
//   - Keyframes: "0,1 0.7,1 1,0" (time,value pairs, time normalised to 0-1)
//   - Interpolation keywords: "Linear", "EaseIn", "EaseOut", "FastInOutWeak"
//
// The strings are parsed once at load time; the simulation only ever sees the
// resulting Range and Keyframe values.
package particle

// Keyframe represents a single keyframe in an animation curve.
// Used for curves evaluated over a normalised lifetime (caption fades,
// spark shrink).
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64 // Value at this keyframe
}

// Range is an inclusive [Min, Max] interval parsed from "[min max]" or a
// single fixed value. A fixed value has Min == Max.
type Range struct {
	Min float64
	Max float64
}

// Fixed reports whether the range collapses to a single value.
func (r Range) Fixed() bool {
	return r.Min == r.Max
}

// Contains reports whether v lies inside the range (inclusive).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Curve is a parsed keyframe curve together with its interpolation mode.
type Curve struct {
	Keyframes     []Keyframe
	Interpolation string
}

// Empty reports whether the curve has no keyframes.
func (c Curve) Empty() bool {
	return len(c.Keyframes) == 0
}

// At evaluates the curve at normalised time t.
func (c Curve) At(t float64) float64 {
	return EvaluateKeyframes(c.Keyframes, t, c.Interpolation)
}
