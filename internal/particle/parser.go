package particle

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseRange parses a fixed value ("7") or range ("[5 9]") strictly.
// Unlike ParseValue it reports malformed input and reversed bounds.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty value")
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unterminated range %q", s)
		}
		parts := strings.Fields(s[1 : len(s)-1])
		if len(parts) < 1 || len(parts) > 2 {
			return Range{}, fmt.Errorf("range %q must have one or two numbers", s)
		}
		lo, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range minimum in %q: %w", s, err)
		}
		hi := lo
		if len(parts) == 2 {
			hi, err = strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range maximum in %q: %w", s, err)
			}
		}
		if hi < lo {
			return Range{}, fmt.Errorf("range %q has max < min", s)
		}
		return Range{Min: lo, Max: hi}, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return Range{Min: v, Max: v}, nil
}

// ParseCurve parses a keyframe curve such as "EaseOut 0,0 0.2,1 1,0".
// Keyframe times must lie in [0, 1] and be non-decreasing.
func ParseCurve(s string) (Curve, error) {
	_, _, keyframes, interp := ParseValue(s)
	if len(keyframes) == 0 {
		return Curve{}, fmt.Errorf("curve %q has no keyframes", s)
	}
	if n := len(strings.Fields(strings.TrimSpace(strings.ReplaceAll(s, interp, "")))); n != len(keyframes) {
		return Curve{}, fmt.Errorf("curve %q has malformed keyframes", s)
	}
	prev := -1.0
	for _, k := range keyframes {
		if k.Time < 0 || k.Time > 1 {
			return Curve{}, fmt.Errorf("curve %q keyframe time %v outside [0, 1]", s, k.Time)
		}
		if k.Time < prev {
			return Curve{}, fmt.Errorf("curve %q keyframe times are not sorted", s)
		}
		prev = k.Time
	}
	return Curve{Keyframes: keyframes, Interpolation: interp}, nil
}

// UnmarshalYAML accepts both scalar numbers and the "[min max]" notation.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: range must be a scalar", value.Line)
	}
	parsed, err := ParseRange(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// MarshalYAML writes the range back in the notation it was read from.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// String formats the range as "v" or "[min max]".
func (r Range) String() string {
	if r.Fixed() {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return "[" + strconv.FormatFloat(r.Min, 'g', -1, 64) + " " + strconv.FormatFloat(r.Max, 'g', -1, 64) + "]"
}

// UnmarshalYAML parses a curve scalar.
func (c *Curve) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: curve must be a scalar", value.Line)
	}
	parsed, err := ParseCurve(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}
