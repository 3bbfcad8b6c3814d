package theme

import (
	"math"

	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/contrast"
	"github.com/jmylchreest/ctbs/internal/roles"
)

// Context is one harmonized theme variant. It is immutable once built and
// safe for concurrent reads.
type Context struct {
	polarity  Polarity
	roles     roles.RoleMap
	bodyBg    colour.RGB
	bodyColor colour.RGB
	emphasis  colour.RGB
	link      colour.RGB
	border    colour.RGB
	lightBody bool

	solver *contrast.Solver
	rules  Rules
}

// Polarity returns the context's body polarity.
func (c *Context) Polarity() Polarity { return c.polarity }

// Roles returns a copy of the harmonized role map.
func (c *Context) Roles() roles.RoleMap { return c.roles }

// Role returns the harmonized colour for r.
func (c *Context) Role(r roles.Role) colour.RGB { return c.roles.Get(r) }

// BodyBg returns the page background.
func (c *Context) BodyBg() colour.RGB { return c.bodyBg }

// BodyColor returns the default text colour.
func (c *Context) BodyColor() colour.RGB { return c.bodyColor }

// Emphasis returns the high-emphasis text colour.
func (c *Context) Emphasis() colour.RGB { return c.emphasis }

// Link returns the link colour.
func (c *Context) Link() colour.RGB { return c.link }

// LinkHover returns the hovered link colour.
func (c *Context) LinkHover() colour.RGB { return c.Resolve(roles.Primary, HoverText) }

// Border returns the default border colour.
func (c *Context) Border() colour.RGB { return c.border }

// LightBody reports whether the body background reads as light.
func (c *Context) LightBody() bool { return c.lightBody }

// GrayShade returns a step of the gray scale. Weight 500 is the Gray role;
// each 10 points above darkens by one lightness point, each 10 below
// lightens by one.
func (c *Context) GrayShade(weight int) colour.RGB {
	gray := c.roles.Get(roles.Gray)
	diff := float64((weight - 500) / 10)
	switch {
	case diff > 0:
		return colour.Darken(gray, diff)
	case diff < 0:
		return colour.Lighten(gray, -diff)
	default:
		return gray
	}
}

// Resolve derives a variant of role r.
//
// Shifts that move toward the body colour (subtle fills and borders) go
// lighter on a light body and darker on a dark one; state shifts (hover,
// active, striped) go the other way.
func (c *Context) Resolve(r roles.Role, v Variant) colour.RGB {
	base := c.roles.Get(r)
	rules := c.rules

	switch v {
	case Base, OutlineBorder:
		return base
	case Text, OutlineText:
		return c.text(base)
	case BgSubtle:
		return c.bgSubtle(base)
	case TextEmphasis:
		bgs := []colour.RGB{c.bgSubtle(base), c.bodyBg}
		return c.solver.EnsureContrastRatioAll(base, bgs, rules.TextTarget, rules.EmphasisPasses)
	case BorderSubtle:
		return colour.Shift(base, rules.BorderSubtleDelta, !c.lightBody)
	case HoverBg, ActiveBg:
		return colour.Shift(base, rules.HoverDelta, c.lightBody)
	case HoverText, ActiveText:
		return c.text(colour.Shift(base, rules.HoverTextDelta, c.lightBody))
	case Striped:
		return colour.Shift(base, rules.StripedDelta, c.lightBody)
	case ButtonBg:
		return c.buttonBg(base)
	case ButtonText:
		return c.solver.EnsureContrastRatio(c.text(base), c.buttonBg(base), rules.TextTarget)
	case ButtonHoverBg:
		return c.buttonHoverBg(base)
	case ButtonHoverText:
		return c.solver.EnsureContrastRatio(c.text(base), c.buttonHoverBg(base), rules.TextTarget)
	case BadgeBg:
		bg, _ := c.solver.MakeButtonColor(base, rules.TextTarget)
		return bg
	case BadgeText:
		_, text := c.solver.MakeButtonColor(base, rules.TextTarget)
		return text
	default:
		return base
	}
}

func (c *Context) text(fg colour.RGB) colour.RGB {
	return c.solver.EnsureContrastRatio(fg, c.bodyBg, c.rules.TextTarget)
}

// bgSubtle moves base SubtleDelta points toward the body and pins it past
// the subtle bound. Channel truncation can land the realised lightness just
// short of the bound, so it keeps stepping until the bound holds.
func (c *Context) bgSubtle(base colour.RGB) colour.RGB {
	l := base.HSL().L
	if c.lightBody {
		l = math.Max(l+c.rules.SubtleDelta, c.rules.SubtleLightMin)
		out := colour.WithLightness(base, l)
		for out.HSL().L < c.rules.SubtleLightMin && l < 100 {
			l += 0.5
			out = colour.WithLightness(base, l)
		}
		return out
	}

	l = math.Min(l-c.rules.SubtleDelta, c.rules.SubtleDarkMax)
	out := colour.WithLightness(base, l)
	for out.HSL().L > c.rules.SubtleDarkMax && l > 0 {
		l -= 0.5
		out = colour.WithLightness(base, l)
	}
	return out
}

func (c *Context) buttonBg(base colour.RGB) colour.RGB {
	return c.avoidDeadZone(c.solver.EnsureContrastRatio(base, c.bodyBg, c.rules.ButtonTarget))
}

func (c *Context) buttonHoverBg(base colour.RGB) colour.RGB {
	return c.avoidDeadZone(colour.Shift(c.buttonBg(base), c.rules.HoverDelta, c.lightBody))
}

// avoidDeadZone pushes a fill out of the luminance band where neither
// black nor white text reaches the text target. Fills above the middle of
// the band are lightened, the rest darkened, until they leave the band or
// lightness is pinned.
func (c *Context) avoidDeadZone(fill colour.RGB) colour.RGB {
	low, high := c.rules.DeadZoneLow, c.rules.DeadZoneHigh
	mid := (low + high) / 2

	for {
		lum := colour.Luminance(fill)
		if lum < low || lum > high {
			return fill
		}
		l := fill.HSL().L
		var next colour.RGB
		if lum > mid {
			if l >= 100 {
				return fill
			}
			next = colour.Lighten(fill, c.rules.DeadZoneNudge)
		} else {
			if l <= 0 {
				return fill
			}
			next = colour.Darken(fill, c.rules.DeadZoneNudge)
		}
		if next == fill {
			return fill
		}
		fill = next
	}
}
