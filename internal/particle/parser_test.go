package particle

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        Range
		errContains string
	}{
		{"fixed", "150", Range{150, 150}, ""},
		{"range", "[5 9]", Range{5, 9}, ""},
		{"single bracket", "[0.5]", Range{0.5, 0.5}, ""},
		{"padded", "  [ 3 6 ] ", Range{3, 6}, ""},
		{"empty", "", Range{}, "empty value"},
		{"unterminated", "[5 9", Range{}, "unterminated"},
		{"three numbers", "[1 2 3]", Range{}, "one or two numbers"},
		{"reversed", "[9 5]", Range{}, "max < min"},
		{"not a number", "fast", Range{}, "invalid value"},
		{"bad max", "[1 x]", Range{}, "invalid range maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.errContains != "" {
				if err == nil {
					t.Fatalf("ParseRange(%q) expected error containing %q", tt.input, tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ParseRange(%q) error = %q, want containing %q", tt.input, err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCurve(t *testing.T) {
	c, err := ParseCurve("FastInOutWeak 0,0 0.25,1 1,0")
	if err != nil {
		t.Fatalf("ParseCurve failed: %v", err)
	}
	if len(c.Keyframes) != 3 || c.Interpolation != "FastInOutWeak" {
		t.Errorf("ParseCurve = %+v, want 3 keyframes with FastInOutWeak", c)
	}
	if c.At(0.25) != 1 {
		t.Errorf("At(0.25) = %v, want 1", c.At(0.25))
	}

	for _, bad := range []string{"", "7", "0,0 1", "0,0 1.5,1", "0.5,1 0.2,0"} {
		if _, err := ParseCurve(bad); err == nil {
			t.Errorf("ParseCurve(%q) expected error", bad)
		}
	}
}

func TestRange_YAML(t *testing.T) {
	var doc struct {
		Count Range `yaml:"count"`
		Power Range `yaml:"power"`
		Fade  Curve `yaml:"fade"`
	}
	src := "count: 150\npower: \"[5 9]\"\nfade: \"0,0 0.5,1 1,0\"\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	if doc.Count != (Range{150, 150}) {
		t.Errorf("count = %+v", doc.Count)
	}
	if doc.Power != (Range{5, 9}) {
		t.Errorf("power = %+v", doc.Power)
	}
	if len(doc.Fade.Keyframes) != 3 {
		t.Errorf("fade keyframes = %d, want 3", len(doc.Fade.Keyframes))
	}

	out, err := yaml.Marshal(doc.Power)
	if err != nil {
		t.Fatalf("yaml.Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), "[5 9]") {
		t.Errorf("marshalled range = %q, want [5 9]", out)
	}

	var bad struct {
		Power Range `yaml:"power"`
	}
	err = yaml.Unmarshal([]byte("power: [5, 9]\n"), &bad)
	if err == nil || !strings.Contains(err.Error(), "must be a scalar") {
		t.Errorf("sequence node error = %v, want scalar error", err)
	}
}
