package colour

import (
	"math"
	"testing"
)

// gridColours returns a coarse sweep over the RGB cube.
func gridColours(step int) []RGB {
	var out []RGB
	for r := 0; r <= 255; r += step {
		for g := 0; g <= 255; g += step {
			for b := 0; b <= 255; b += step {
				out = append(out, RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
			}
		}
	}
	return out
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want float64
	}{
		{name: "black", rgb: Black, want: 0},
		{name: "white", rgb: White, want: 1},
		{name: "red", rgb: RGB{R: 255}, want: 0.2126},
		{name: "green", rgb: RGB{G: 255}, want: 0.7152},
		{name: "blue", rgb: RGB{B: 255}, want: 0.0722},
		{name: "linear segment", rgb: RGB{R: 10, G: 10, B: 10}, want: (10.0 / 255.0) / 12.92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luminance(tt.rgb); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Luminance(%v) = %f, want %f", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestContrastRatioKnownPairs(t *testing.T) {
	if got := ContrastRatio(Black, White); math.Abs(got-21) > 1e-9 {
		t.Errorf("ContrastRatio(black, white) = %f, want 21", got)
	}

	// Bootstrap's grey on white is a well known AA pass, AAA fail.
	got := ContrastRatio(RGB{R: 108, G: 117, B: 125}, White)
	if got < 4.5 || got > 7 {
		t.Errorf("ContrastRatio(#6c757d, white) = %f, want between 4.5 and 7", got)
	}
}

func TestContrastRatioSymmetryAndRange(t *testing.T) {
	colours := gridColours(51)
	for _, a := range colours {
		if got := ContrastRatio(a, a); got != 1 {
			t.Fatalf("ContrastRatio(%v, %v) = %f, want 1", a, a, got)
		}
		for _, b := range colours {
			ab := ContrastRatio(a, b)
			ba := ContrastRatio(b, a)
			if ab != ba {
				t.Fatalf("ContrastRatio not symmetric for %v/%v: %f vs %f", a, b, ab, ba)
			}
			if ab < 1 || ab > 21+1e-9 {
				t.Fatalf("ContrastRatio(%v, %v) = %f out of [1,21]", a, b, ab)
			}
		}
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for _, c := range gridColours(17) {
		back := c.HSL().RGB()
		if absDiff(c.R, back.R) > 1 || absDiff(c.G, back.G) > 1 || absDiff(c.B, back.B) > 1 {
			t.Fatalf("round trip %v -> %+v -> %v drifted more than one step", c, c.HSL(), back)
		}
	}
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSL
	}{
		{name: "red", rgb: RGB{R: 255}, want: HSL{H: 0, S: 100, L: 50}},
		{name: "green", rgb: RGB{G: 255}, want: HSL{H: 120, S: 100, L: 50}},
		{name: "blue", rgb: RGB{B: 255}, want: HSL{H: 240, S: 100, L: 50}},
		{name: "white", rgb: White, want: HSL{H: 0, S: 0, L: 100}},
		{name: "black", rgb: Black, want: HSL{H: 0, S: 0, L: 0}},
		{name: "yellow", rgb: RGB{R: 255, G: 193, B: 7}, want: HSL{H: 45, S: 100, L: 51.37}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rgb.HSL()
			if math.Abs(got.H-tt.want.H) > 0.01 || math.Abs(got.S-tt.want.S) > 0.01 || math.Abs(got.L-tt.want.L) > 0.01 {
				t.Errorf("%v.HSL() = %+v, want %+v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestHSLToRGBNormalisesHue(t *testing.T) {
	a := HSL{H: 30, S: 80, L: 50}.RGB()
	b := HSL{H: 390, S: 80, L: 50}.RGB()
	c := HSL{H: -330, S: 80, L: 50}.RGB()
	if a != b || a != c {
		t.Errorf("hue not normalised: %v %v %v", a, b, c)
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct {
		h1, h2 float64
		want   float64
	}{
		{0, 0, 0},
		{10, 350, 20},
		{350, 10, 20},
		{0, 180, 180},
		{90, 270, 180},
		{120, 240, 120},
	}

	for _, tt := range tests {
		if got := HueDistance(tt.h1, tt.h2); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HueDistance(%v, %v) = %v, want %v", tt.h1, tt.h2, got, tt.want)
		}
	}
}

func TestRotateHueToward(t *testing.T) {
	tests := []struct {
		name            string
		h, target, frac float64
		want            float64
	}{
		{name: "forward", h: 100, target: 120, frac: 0.3, want: 106},
		{name: "backward", h: 140, target: 120, frac: 0.3, want: 134},
		{name: "wraps past zero", h: 350, target: 10, frac: 0.5, want: 0},
		{name: "wraps below zero", h: 10, target: 330, frac: 0.5, want: 350},
		{name: "full rotation", h: 200, target: 195, frac: 1, want: 195},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RotateHueToward(tt.h, tt.target, tt.frac); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RotateHueToward(%v, %v, %v) = %v, want %v", tt.h, tt.target, tt.frac, got, tt.want)
			}
		})
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
