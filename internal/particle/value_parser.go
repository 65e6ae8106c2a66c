package particle

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// interpolationKeywords lists the interpolation modes understood by
// EvaluateKeyframes.
var interpolationKeywords = []string{"Linear", "EaseIn", "EaseOut", "FastInOutWeak"}

// ParseValue parses a value string from a configuration file.
// Supports multiple formats:
//   - Fixed value: "150" → min=150, max=150, keyframes=nil
//   - Range: "[0.7 0.9]" → min=0.7, max=0.9, keyframes=nil
//   - Single-value range: "[4]" → min=4, max=4
//   - Keyframes: "0,1 0.7,1 1,0" → keyframes=[{0,1},{0.7,1},{1,0}]
//   - Interpolation: "EaseOut 0,0 1,1" → keyframes with interpolation="EaseOut"
//
// Unparseable input yields zero values; use ParseRange or ParseCurve when a
// malformed value must be reported.
func ParseValue(s string) (min, max float64, keyframes []Keyframe, interpolation string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil, ""
	}

	// Range format: "[min max]" or "[value]"
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		rangeStr := strings.TrimPrefix(s, "[")
		rangeStr = strings.TrimSuffix(rangeStr, "]")
		parts := strings.Fields(rangeStr)
		switch len(parts) {
		case 2:
			lo, err1 := strconv.ParseFloat(parts[0], 64)
			hi, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 == nil && err2 == nil {
				return lo, hi, nil, ""
			}
		case 1:
			val, err := strconv.ParseFloat(parts[0], 64)
			if err == nil {
				return val, val, nil, ""
			}
		}
		return 0, 0, nil, ""
	}

	for _, keyword := range interpolationKeywords {
		if strings.Contains(s, keyword) {
			interpolation = keyword
			s = strings.TrimSpace(strings.ReplaceAll(s, keyword, ""))
			break
		}
	}

	// Keyframes format: "time,value" pairs separated by whitespace
	if strings.Contains(s, ",") {
		parts := strings.Fields(s)
		keyframes = make([]Keyframe, 0, len(parts))
		for _, part := range parts {
			pair := strings.Split(part, ",")
			if len(pair) != 2 {
				continue
			}
			t, err1 := strconv.ParseFloat(pair[0], 64)
			v, err2 := strconv.ParseFloat(pair[1], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			keyframes = append(keyframes, Keyframe{Time: t, Value: v})
		}
		if len(keyframes) > 0 {
			return 0, 0, keyframes, interpolation
		}
		return 0, 0, nil, ""
	}

	// Fixed value format
	if value, err := strconv.ParseFloat(s, 64); err == nil {
		return value, value, nil, ""
	}

	return 0, 0, nil, ""
}

// EvaluateKeyframes calculates the interpolated value at time t (0-1)
// using the provided keyframes and interpolation mode.
//
// Parameters:
//   - keyframes: Array of keyframes (must be sorted by Time)
//   - t: Normalized time (0-1)
//   - interpolation: Interpolation mode ("Linear", "EaseIn", etc.)
//
// Returns the interpolated value at time t.
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))

	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]

		if t >= k0.Time && t <= k1.Time {
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k0.Value
			}
			ratio := (t - k0.Time) / duration

			switch interpolation {
			case "EaseIn":
				ratio = ratio * ratio
			case "EaseOut":
				ratio = 1 - (1-ratio)*(1-ratio)
			case "FastInOutWeak":
				ratio = ratio * ratio * (3 - 2*ratio)
			}
			return k0.Value + ratio*(k1.Value-k0.Value)
		}
	}

	return keyframes[len(keyframes)-1].Value
}

// RandomInRange returns a random float64 in the range [min, max] drawn from rng.
// A nil rng falls back to the global source.
func RandomInRange(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	if rng == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + rng.Float64()*(max-min)
}

// Sample draws a value from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	return RandomInRange(rng, r.Min, r.Max)
}
