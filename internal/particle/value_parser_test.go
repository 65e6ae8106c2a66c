package particle

import (
	"math"
	"math/rand"
	"testing"
)

// TestParseValue_Formats tests the fixed, range and keyframe notations
func TestParseValue_Formats(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantMin    float64
		wantMax    float64
		wantKeys   int
		wantInterp string
	}{
		{"Fixed integer", "150", 150, 150, 0, ""},
		{"Fixed float", "0.035", 0.035, 0.035, 0, ""},
		{"Negative fixed", "-0.5", -0.5, -0.5, 0, ""},
		{"Burst power range", "[5 9]", 5, 9, 0, ""},
		{"Decay range", "[0.004 0.010]", 0.004, 0.010, 0, ""},
		{"Single-value range", "[4]", 4, 4, 0, ""},
		{"Fade curve", "0,0 0.2,1 0.8,1 1,0", 0, 0, 4, ""},
		{"Eased curve", "EaseOut 0,1 1,0", 0, 0, 2, "EaseOut"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, keyframes, interp := ParseValue(tt.input)
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ParseValue(%q) = (%v, %v), want (%v, %v)", tt.input, min, max, tt.wantMin, tt.wantMax)
			}
			if len(keyframes) != tt.wantKeys {
				t.Errorf("ParseValue(%q) keyframe count = %d, want %d", tt.input, len(keyframes), tt.wantKeys)
			}
			if interp != tt.wantInterp {
				t.Errorf("ParseValue(%q) interpolation = %q, want %q", tt.input, interp, tt.wantInterp)
			}
		})
	}
}

// TestParseValue_EdgeCases tests inputs that degrade to zero values
func TestParseValue_EdgeCases(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "[10", "[a b]", "0,"} {
		min, max, keyframes, _ := ParseValue(input)
		if min != 0 || max != 0 || keyframes != nil {
			t.Errorf("ParseValue(%q) = (%v, %v, %v), want zero values", input, min, max, keyframes)
		}
	}
}

// TestEvaluateKeyframes_Fade tests a caption fade-in / hold / fade-out curve
func TestEvaluateKeyframes_Fade(t *testing.T) {
	keyframes := []Keyframe{
		{Time: 0, Value: 0},
		{Time: 0.2, Value: 1},
		{Time: 0.8, Value: 1},
		{Time: 1, Value: 0},
	}

	tests := []struct {
		t    float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.1, 0.5},
		{0.2, 1},
		{0.5, 1},
		{0.9, 0.5},
		{1, 0},
		{2, 0},
	}

	for _, tt := range tests {
		got := EvaluateKeyframes(keyframes, tt.t, "Linear")
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("EvaluateKeyframes(t=%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

// TestEvaluateKeyframes_Interpolations tests the easing modes
func TestEvaluateKeyframes_Interpolations(t *testing.T) {
	keyframes := []Keyframe{{Time: 0, Value: 0}, {Time: 1, Value: 100}}

	tests := []struct {
		mode string
		want float64
	}{
		{"Linear", 50},
		{"EaseIn", 25},
		{"EaseOut", 75},
		{"FastInOutWeak", 50},
		{"Unknown", 50},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got := EvaluateKeyframes(keyframes, 0.5, tt.mode)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("EvaluateKeyframes(%s, t=0.5) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}

	if got := EvaluateKeyframes(nil, 0.5, "Linear"); got != 0 {
		t.Errorf("EvaluateKeyframes(empty) = %v, want 0", got)
	}
	if got := EvaluateKeyframes([]Keyframe{{Time: 0, Value: 42}}, 0.7, ""); got != 42 {
		t.Errorf("EvaluateKeyframes(single) = %v, want 42", got)
	}
}

// TestRandomInRange tests range sampling with an injected source
func TestRandomInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		got := RandomInRange(rng, 0.004, 0.010)
		if got < 0.004 || got > 0.010 {
			t.Fatalf("RandomInRange(0.004, 0.010) = %v, out of range", got)
		}
	}

	if got := RandomInRange(rng, 5, 5); got != 5 {
		t.Errorf("RandomInRange(5, 5) = %v, want 5", got)
	}
	if got := RandomInRange(rng, 20, 10); got != 20 {
		t.Errorf("RandomInRange(20, 10) = %v, want 20 (min)", got)
	}
	if got := RandomInRange(nil, -10, -5); got < -10 || got > -5 {
		t.Errorf("RandomInRange(nil, -10, -5) = %v, out of range", got)
	}
}

// TestRange_SampleDeterministic tests that equal seeds give equal draws
func TestRange_SampleDeterministic(t *testing.T) {
	r := Range{Min: 5, Max: 9}
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		if va, vb := r.Sample(a), r.Sample(b); va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
	}
}
