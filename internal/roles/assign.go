package roles

import (
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/ctbs/internal/colour"
)

// Score rates how usable c is as a brand colour. Saturated colours near
// the middle of the lightness range score highest.
func Score(c colour.RGB) float64 {
	hsl := c.HSL()
	score := hsl.S*1.5 + (100 - math.Abs(50-hsl.L)*2.5)
	if hsl.L < 20 || hsl.L > 85 {
		score -= 50
	}
	if hsl.S < 10 {
		score -= 30
	}
	return score
}

// ScoreToward is Score plus a bonus for hue proximity to target.
func ScoreToward(c colour.RGB, target float64) float64 {
	return Score(c) + 100 - colour.HueDistance(c.HSL().H, target)
}

// Assigner binds palette colours to roles.
type Assigner struct {
	defaults Defaults
	logger   hclog.Logger
}

// NewAssigner creates an Assigner. A nil logger discards output.
func NewAssigner(defaults Defaults, logger hclog.Logger) *Assigner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Assigner{
		defaults: defaults,
		logger:   logger,
	}
}

// Defaults returns the fallback values this Assigner uses.
func (a *Assigner) Defaults() Defaults {
	return a.defaults
}

// Assign builds a complete RoleMap from p. An empty or nil palette yields
// the defaults for every role.
func (a *Assigner) Assign(p *colour.Palette) RoleMap {
	var colours []colour.RGB
	if p != nil {
		colours = p.Colors
	}

	var m RoleMap
	primary := a.primary(colours)
	m.Set(Primary, primary)
	m.Set(Secondary, a.secondary(p, primary))

	primarySat := primary.HSL().S
	for _, cat := range a.defaults.Categorical {
		m.Set(cat.Role, a.categorical(colours, cat, primarySat))
	}

	m.Set(Light, a.light(colours))
	m.Set(Dark, a.dark(colours))
	m.Set(Gray, a.defaults.Gray)

	if a.logger.IsDebug() {
		args := make([]any, 0, 2*int(numCanonical))
		m.Each(func(r Role, c colour.RGB) {
			args = append(args, r.String(), c.Hex())
		})
		a.logger.Debug("assigned roles", args...)
	}
	return m
}

func (a *Assigner) primary(colours []colour.RGB) colour.RGB {
	if len(colours) == 0 {
		return a.defaults.Primary
	}
	best, bestScore := colours[0], Score(colours[0])
	for _, c := range colours[1:] {
		if s := Score(c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// secondary picks the colour furthest round the wheel from primary.
func (a *Assigner) secondary(p *colour.Palette, primary colour.RGB) colour.RGB {
	if p.Len() == 0 || p.Distinct() <= 1 {
		return primary
	}
	ph := primary.HSL().H
	best, bestDist := p.Colors[0], colour.HueDistance(p.Colors[0].HSL().H, ph)
	for _, c := range p.Colors[1:] {
		if d := colour.HueDistance(c.HSL().H, ph); d > bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// categorical picks the most saturated colour in the role's bucket and
// pulls it toward the canonical hue. With no match it synthesizes one
// from the canonical hue and the primary's saturation.
func (a *Assigner) categorical(colours []colour.RGB, cat Categorical, primarySat float64) colour.RGB {
	matches := colour.FilterByCategory(colours, cat.Bucket)
	if len(matches) == 0 {
		return colour.HSL{
			H: cat.Hue,
			S: math.Min(primarySat+20, 85),
			L: 45,
		}.RGB()
	}

	best := matches[0].HSL()
	for _, c := range matches[1:] {
		if hsl := c.HSL(); hsl.S > best.S {
			best = hsl
		}
	}

	return colour.HSL{
		H: colour.RotateHueToward(best.H, cat.Hue, a.defaults.HueShift),
		S: math.Max(40, math.Min(best.S, 90)),
		L: math.Max(35, math.Min(best.L, 60)),
	}.RGB()
}

// light returns the brightest colour, relit until it can carry dark text.
func (a *Assigner) light(colours []colour.RGB) colour.RGB {
	c := a.defaults.Light
	if len(colours) > 0 {
		c = colours[0]
		for _, cand := range colours[1:] {
			if colour.Luminance(cand) > colour.Luminance(c) {
				c = cand
			}
		}
	}
	if colour.Luminance(c) >= LightMinLuminance {
		return c
	}

	hsl := c.HSL()
	for l := 95.0; l <= 100; l++ {
		c = colour.HSL{H: hsl.H, S: hsl.S, L: l}.RGB()
		if colour.Luminance(c) >= LightMinLuminance {
			break
		}
	}
	return c
}

// dark returns the dimmest colour, redarkened until it can carry light text.
func (a *Assigner) dark(colours []colour.RGB) colour.RGB {
	c := a.defaults.Dark
	if len(colours) > 0 {
		c = colours[0]
		for _, cand := range colours[1:] {
			if colour.Luminance(cand) < colour.Luminance(c) {
				c = cand
			}
		}
	}
	if colour.Luminance(c) <= DarkMaxLuminance {
		return c
	}

	hsl := c.HSL()
	for l := 5.0; l >= 0; l-- {
		c = colour.HSL{H: hsl.H, S: hsl.S, L: l}.RGB()
		if colour.Luminance(c) <= DarkMaxLuminance {
			break
		}
	}
	return c
}
