package theme

import (
	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/roles"
)

// Check is one foreground/background pair that ends up rendered as text.
type Check struct {
	Name       string     `json:"name"`
	Foreground colour.RGB `json:"-"`
	Background colour.RGB `json:"-"`
	FgHex      string     `json:"fg"`
	BgHex      string     `json:"bg"`
	Target     float64    `json:"target"`
	Ratio      float64    `json:"ratio"`
	Pass       bool       `json:"pass"`
}

func newCheck(name string, fg, bg colour.RGB, target float64) Check {
	ratio := colour.ContrastRatio(fg, bg)
	return Check{
		Name:       name,
		Foreground: fg,
		Background: bg,
		FgHex:      fg.Hex(),
		BgHex:      bg.Hex(),
		Target:     target,
		Ratio:      ratio,
		Pass:       ratio >= target,
	}
}

// Audit lists every text pair the theme produces with its contrast ratio.
func (c *Context) Audit() []Check {
	target := c.rules.TextTarget
	checks := []Check{
		newCheck("body", c.bodyColor, c.bodyBg, target),
		newCheck("emphasis", c.emphasis, c.bodyBg, target),
		newCheck("link", c.link, c.bodyBg, target),
		newCheck("link-hover", c.LinkHover(), c.bodyBg, target),
	}

	for _, r := range roles.Canonicals() {
		if r.IsNeutral() {
			continue
		}
		name := r.String()
		subtle := c.Resolve(r, BgSubtle)
		emphasis := c.Resolve(r, TextEmphasis)

		checks = append(checks,
			newCheck(name+"-text", c.Resolve(r, Text), c.bodyBg, target),
			newCheck(name+"-hover-text", c.Resolve(r, HoverText), c.bodyBg, target),
			newCheck(name+"-text-emphasis-subtle", emphasis, subtle, target),
			newCheck(name+"-text-emphasis-body", emphasis, c.bodyBg, target),
			newCheck(name+"-btn", c.Resolve(r, ButtonText), c.Resolve(r, ButtonBg), target),
			newCheck(name+"-btn-hover", c.Resolve(r, ButtonHoverText), c.Resolve(r, ButtonHoverBg), target),
			newCheck(name+"-badge", c.Resolve(r, BadgeText), c.Resolve(r, BadgeBg), target),
		)
	}
	return checks
}

// Failures returns the checks that did not pass.
func Failures(checks []Check) []Check {
	var out []Check
	for _, ch := range checks {
		if !ch.Pass {
			out = append(out, ch)
		}
	}
	return out
}
