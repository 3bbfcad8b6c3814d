package contrast

import (
	"github.com/jmylchreest/ctbs/internal/colour"
)

// EnsureContrast picks black or white text for a background.
//
// White wins when it clears target and is at least as strong as black;
// black wins when it clears target otherwise. When neither clears target
// the choice follows the background's polarity and a shortfall is reported.
func (s *Solver) EnsureContrast(bg colour.RGB, target float64) colour.RGB {
	white := colour.ContrastRatio(bg, colour.White)
	black := colour.ContrastRatio(bg, colour.Black)

	if white >= target && white >= black {
		return colour.White
	}
	if black >= target {
		return colour.Black
	}

	result, achieved := colour.White, white
	if colour.IsLight(bg) {
		result, achieved = colour.Black, black
	}
	s.report(Fallback{
		Kind:       FallbackShortfall,
		Operation:  "ensure-contrast",
		Background: bg,
		Result:     result,
		Achieved:   achieved,
		Target:     target,
	})
	return result
}

// EnsureContrastRatio adjusts fg's lightness until it reaches target plus
// the solver's buffer against bg, keeping fg's hue and saturation.
//
// Design Theory:
//   - Compliant input is returned untouched, so repeated passes are stable.
//   - The scan starts at fg's own lightness and moves away from the
//     background first: darker on light backgrounds, lighter on dark ones.
//   - The scan is a plain integer walk over [0,100]; the first qualifying
//     step wins.
//   - HSL lightness 100 does not always convert to pure white, so black and
//     white are tried on their own once the scan fails. Either one winning
//     is reported as a monochrome fallback.
//   - If nothing reaches the goal the strongest of the scan's best, black
//     and white is returned and reported as a shortfall.
func (s *Solver) EnsureContrastRatio(fg, bg colour.RGB, target float64) colour.RGB {
	if target <= 1 {
		return fg
	}

	goal := target + s.buffer
	current := colour.ContrastRatio(fg, bg)
	if current >= goal {
		return fg
	}

	hsl := fg.HSL()
	best, bestRatio := fg, current

	for _, l := range scanOrder(int(hsl.L), colour.IsLight(bg)) {
		c := colour.HSL{H: hsl.H, S: hsl.S, L: float64(l)}.RGB()
		ratio := colour.ContrastRatio(c, bg)
		if ratio >= goal {
			if c == colour.Black || c == colour.White {
				s.reportMonochrome(fg, bg, c, ratio, goal)
			}
			return c
		}
		if ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}

	white := colour.ContrastRatio(colour.White, bg)
	black := colour.ContrastRatio(colour.Black, bg)
	switch {
	case white >= goal && white >= black:
		s.reportMonochrome(fg, bg, colour.White, white, goal)
		return colour.White
	case black >= goal:
		s.reportMonochrome(fg, bg, colour.Black, black, goal)
		return colour.Black
	}

	if white > bestRatio {
		best, bestRatio = colour.White, white
	}
	if black > bestRatio {
		best, bestRatio = colour.Black, black
	}
	s.report(Fallback{
		Kind:       FallbackShortfall,
		Operation:  "ensure-contrast-ratio",
		Foreground: fg,
		Background: bg,
		Result:     best,
		Achieved:   bestRatio,
		Target:     goal,
	})
	return best
}

func (s *Solver) reportMonochrome(fg, bg, result colour.RGB, ratio, goal float64) {
	s.report(Fallback{
		Kind:       FallbackMonochrome,
		Operation:  "ensure-contrast-ratio",
		Foreground: fg,
		Background: bg,
		Result:     result,
		Achieved:   ratio,
		Target:     goal,
	})
}

// scanOrder lists the lightness values to try from start. On a light
// background it walks down to 0 first and then up to 100; on a dark one it
// walks up first. The start value appears in both legs, and both ends of
// the range are always visited.
func scanOrder(start int, lightBackground bool) []int {
	if start < 0 {
		start = 0
	}
	if start > 100 {
		start = 100
	}

	order := make([]int, 0, 102)
	down := func() {
		for l := start; l >= 0; l-- {
			order = append(order, l)
		}
	}
	up := func() {
		for l := start; l <= 100; l++ {
			order = append(order, l)
		}
	}

	if lightBackground {
		down()
		up()
	} else {
		up()
		down()
	}
	return order
}

// MakeButtonColor derives a button fill and its text colour from base.
//
// It first darkens base in steps of two lightness points, down to 5, until
// white text clears target. Failing that it lightens in steps of two, up to
// 95, until black text clears target. If neither works the fill is pinned
// at lightness 20 with white text and a shortfall is reported.
func (s *Solver) MakeButtonColor(base colour.RGB, target float64) (bg, text colour.RGB) {
	hsl := base.HSL()

	for l := hsl.L; l >= 5; l -= 2 {
		c := colour.HSL{H: hsl.H, S: hsl.S, L: l}.RGB()
		if colour.ContrastRatio(colour.White, c) >= target {
			return c, colour.White
		}
	}

	for l := hsl.L; l <= 95; l += 2 {
		c := colour.HSL{H: hsl.H, S: hsl.S, L: l}.RGB()
		if colour.ContrastRatio(colour.Black, c) >= target {
			return c, colour.Black
		}
	}

	bg = colour.HSL{H: hsl.H, S: hsl.S, L: 20}.RGB()
	s.report(Fallback{
		Kind:       FallbackShortfall,
		Operation:  "button-colour",
		Foreground: colour.White,
		Background: base,
		Result:     bg,
		Achieved:   colour.ContrastRatio(colour.White, bg),
		Target:     target,
	})
	return bg, colour.White
}
