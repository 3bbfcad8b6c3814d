package contrast

import (
	"github.com/jmylchreest/ctbs/internal/colour"
)

// DefaultPasses bounds EnsureContrastRatioAll.
const DefaultPasses = 4

// EnsureContrastRatioAll repairs fg until it reaches target against every
// background in bgs. Each pass runs EnsureContrastRatio against each
// background in turn; the loop stops as soon as one pass leaves every pair
// compliant, or after passes rounds.
//
// When the passes run out, whichever of black or white has the better
// worst-case ratio is returned.
func (s *Solver) EnsureContrastRatioAll(fg colour.RGB, bgs []colour.RGB, target float64, passes int) colour.RGB {
	if len(bgs) == 0 || target <= 1 {
		return fg
	}
	if passes < 1 {
		passes = DefaultPasses
	}

	quiet := s.quiet()
	for range passes {
		for _, bg := range bgs {
			fg = quiet.EnsureContrastRatio(fg, bg, target)
		}
		if worstRatio(fg, bgs) >= target {
			return fg
		}
	}

	result := colour.White
	achieved := worstRatio(colour.White, bgs)
	if black := worstRatio(colour.Black, bgs); black > achieved {
		result, achieved = colour.Black, black
	}

	kind := FallbackMonochrome
	if achieved < target {
		kind = FallbackShortfall
	}
	s.report(Fallback{
		Kind:       kind,
		Operation:  "ensure-contrast-ratio-all",
		Foreground: fg,
		Background: bgs[0],
		Result:     result,
		Achieved:   achieved,
		Target:     target,
	})
	return result
}

// quiet returns a copy of s that reports nothing, used for intermediate
// steps whose outcome is judged as a whole.
func (s *Solver) quiet() *Solver {
	return New(WithBuffer(s.buffer))
}

func worstRatio(fg colour.RGB, bgs []colour.RGB) float64 {
	worst := 21.0
	for _, bg := range bgs {
		if r := colour.ContrastRatio(fg, bg); r < worst {
			worst = r
		}
	}
	return worst
}
