// Package theme turns a role map into light and dark theme contexts whose
// derived colours each meet their own contrast threshold.
package theme

import (
	"fmt"

	"github.com/jmylchreest/ctbs/internal/contrast"
)

// Polarity selects which surface the body sits on.
type Polarity int

const (
	// PolarityLight puts dark text on the Light role.
	PolarityLight Polarity = iota
	// PolarityDark puts light text on the Dark role.
	PolarityDark
)

// String returns the string representation of a Polarity.
func (p Polarity) String() string {
	switch p {
	case PolarityLight:
		return "light"
	case PolarityDark:
		return "dark"
	default:
		return fmt.Sprintf("polarity(%d)", int(p))
	}
}

// Rules holds the thresholds and lightness deltas used to derive context
// colours. Deltas are HSL lightness percentage points.
type Rules struct {
	TextTarget   float64
	ButtonTarget float64

	SubtleDelta       float64
	BorderSubtleDelta float64
	HoverDelta        float64
	HoverTextDelta    float64
	StripedDelta      float64

	// SubtleLightMin and SubtleDarkMax pin subtle backgrounds near the
	// ends of the lightness range.
	SubtleLightMin float64
	SubtleDarkMax  float64

	// Button fills with luminance inside [DeadZoneLow, DeadZoneHigh] can
	// carry neither black nor white text at 7:1 and are nudged out by
	// DeadZoneNudge points at a time.
	DeadZoneLow   float64
	DeadZoneHigh  float64
	DeadZoneNudge float64

	// EmphasisPasses bounds the repair of text that must read on two
	// backgrounds at once.
	EmphasisPasses int
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		TextTarget:        contrast.TargetAAA,
		ButtonTarget:      contrast.TargetLarge,
		SubtleDelta:       40,
		BorderSubtleDelta: 30,
		HoverDelta:        15,
		HoverTextDelta:    10,
		StripedDelta:      5,
		SubtleLightMin:    96,
		SubtleDarkMax:     8,
		DeadZoneLow:       0.10,
		DeadZoneHigh:      0.30,
		DeadZoneNudge:     15,
		EmphasisPasses:    contrast.DefaultPasses,
	}
}

// Validate checks that the rules describe a usable configuration.
func (r Rules) Validate() error {
	if r.TextTarget < 1 || r.TextTarget > 21 {
		return fmt.Errorf("text target %.2f out of range [1,21]", r.TextTarget)
	}
	if r.ButtonTarget < 1 || r.ButtonTarget > 21 {
		return fmt.Errorf("button target %.2f out of range [1,21]", r.ButtonTarget)
	}
	if r.DeadZoneLow > r.DeadZoneHigh {
		return fmt.Errorf("dead zone [%.2f, %.2f] is inverted", r.DeadZoneLow, r.DeadZoneHigh)
	}
	if r.DeadZoneNudge <= 0 {
		return fmt.Errorf("dead zone nudge must be positive")
	}
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"subtle", r.SubtleDelta},
		{"border-subtle", r.BorderSubtleDelta},
		{"hover", r.HoverDelta},
		{"hover-text", r.HoverTextDelta},
		{"striped", r.StripedDelta},
	} {
		if d.v < 0 || d.v > 100 {
			return fmt.Errorf("%s delta %.1f out of range [0,100]", d.name, d.v)
		}
	}
	return nil
}
