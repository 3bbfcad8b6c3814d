package css

import (
	"fmt"

	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/roles"
	"github.com/jmylchreest/ctbs/internal/theme"
)

// Format selects how a colour is written.
type Format int

const (
	// FormatHex writes "#rrggbb".
	FormatHex Format = iota
	// FormatTriple writes "r, g, b" for use inside rgba(var(...), a).
	FormatTriple
	// FormatRGBA writes "rgba(r, g, b, a)" using Variable.Alpha.
	FormatRGBA
)

// Source selects which context colour a variable reads.
type Source int

// Sources. SourceRole resolves Variable.Role and Variable.Variant.
const (
	SourceRole Source = iota
	SourceBodyBg
	SourceBodyColor
	SourceEmphasis
	SourceLink
	SourceLinkHover
	SourceBorder
	SourceGrayShade
	SourceWhite
	SourceBlack
)

// Variable binds one CSS custom property to a context colour.
type Variable struct {
	Name    string
	Source  Source
	Role    roles.Role
	Variant theme.Variant
	Weight  int
	Format  Format
	Alpha   float64
}

// Value renders the variable for ctx.
func (v Variable) Value(ctx *theme.Context) string {
	c := v.colour(ctx)
	switch v.Format {
	case FormatTriple:
		return c.Triple()
	case FormatRGBA:
		return c.RGBA(v.Alpha)
	default:
		return c.Hex()
	}
}

func (v Variable) colour(ctx *theme.Context) colour.RGB {
	switch v.Source {
	case SourceBodyBg:
		return ctx.BodyBg()
	case SourceBodyColor:
		return ctx.BodyColor()
	case SourceEmphasis:
		return ctx.Emphasis()
	case SourceLink:
		return ctx.Link()
	case SourceLinkHover:
		return ctx.LinkHover()
	case SourceBorder:
		return ctx.Border()
	case SourceGrayShade:
		return ctx.GrayShade(v.Weight)
	case SourceWhite:
		return colour.White
	case SourceBlack:
		return colour.Black
	default:
		return ctx.Resolve(v.Role, v.Variant)
	}
}

// themeRoles are the roles Bootstrap exposes as theme colours.
var themeRoles = []roles.Role{
	roles.Primary, roles.Secondary, roles.Success, roles.Info,
	roles.Warning, roles.Danger, roles.Light, roles.Dark,
}

// paletteRoles are Bootstrap's named hue variables, aliases included.
var paletteRoles = []roles.Role{
	roles.Blue, roles.Indigo, roles.Purple, roles.Pink, roles.Red,
	roles.Orange, roles.Yellow, roles.Green, roles.Teal, roles.Cyan,
}

// Table returns every emitted variable in emission order.
func Table() []Variable {
	var vars []Variable
	add := func(v Variable) { vars = append(vars, v) }
	role := func(name string, r roles.Role, variant theme.Variant, f Format) {
		add(Variable{Name: name, Source: SourceRole, Role: r, Variant: variant, Format: f})
	}
	source := func(name string, s Source, f Format) {
		add(Variable{Name: name, Source: s, Format: f})
	}

	add(Variable{Name: "--bs-white", Source: SourceWhite})
	add(Variable{Name: "--bs-white-rgb", Source: SourceWhite, Format: FormatTriple})
	add(Variable{Name: "--bs-black", Source: SourceBlack})
	add(Variable{Name: "--bs-black-rgb", Source: SourceBlack, Format: FormatTriple})

	for _, r := range paletteRoles {
		role("--bs-"+r.String(), r, theme.Base, FormatHex)
	}
	role("--bs-gray", roles.Gray, theme.Base, FormatHex)
	for w := 100; w <= 900; w += 100 {
		add(Variable{Name: fmt.Sprintf("--bs-gray-%d", w), Source: SourceGrayShade, Weight: w})
	}

	for _, r := range themeRoles {
		n := r.String()
		role("--bs-"+n, r, theme.Base, FormatHex)
		role("--bs-"+n+"-rgb", r, theme.Base, FormatTriple)
		role("--bs-"+n+"-text-emphasis", r, theme.TextEmphasis, FormatHex)
		role("--bs-"+n+"-bg-subtle", r, theme.BgSubtle, FormatHex)
		role("--bs-"+n+"-border-subtle", r, theme.BorderSubtle, FormatHex)
	}

	source("--bs-body-color", SourceBodyColor, FormatHex)
	source("--bs-body-color-rgb", SourceBodyColor, FormatTriple)
	source("--bs-body-bg", SourceBodyBg, FormatHex)
	source("--bs-body-bg-rgb", SourceBodyBg, FormatTriple)
	source("--bs-emphasis-color", SourceEmphasis, FormatHex)
	source("--bs-emphasis-color-rgb", SourceEmphasis, FormatTriple)
	add(Variable{Name: "--bs-secondary-color", Source: SourceBodyColor, Format: FormatRGBA, Alpha: 0.75})
	add(Variable{Name: "--bs-tertiary-color", Source: SourceBodyColor, Format: FormatRGBA, Alpha: 0.5})
	source("--bs-link-color", SourceLink, FormatHex)
	source("--bs-link-color-rgb", SourceLink, FormatTriple)
	source("--bs-link-hover-color", SourceLinkHover, FormatHex)
	source("--bs-link-hover-color-rgb", SourceLinkHover, FormatTriple)
	source("--bs-border-color", SourceBorder, FormatHex)
	add(Variable{Name: "--bs-border-color-translucent", Source: SourceBodyColor, Format: FormatRGBA, Alpha: 0.175})

	for _, r := range themeRoles {
		n := r.String()
		role("--ctbs-btn-"+n+"-bg", r, theme.ButtonBg, FormatHex)
		role("--ctbs-btn-"+n+"-color", r, theme.ButtonText, FormatHex)
		role("--ctbs-btn-"+n+"-hover-bg", r, theme.ButtonHoverBg, FormatHex)
		role("--ctbs-btn-"+n+"-hover-color", r, theme.ButtonHoverText, FormatHex)
		role("--ctbs-btn-outline-"+n+"-color", r, theme.OutlineText, FormatHex)
		role("--ctbs-btn-outline-"+n+"-border", r, theme.OutlineBorder, FormatHex)
		role("--ctbs-badge-"+n+"-bg", r, theme.BadgeBg, FormatHex)
		role("--ctbs-badge-"+n+"-color", r, theme.BadgeText, FormatHex)
		role("--ctbs-"+n+"-text", r, theme.Text, FormatHex)
		role("--ctbs-"+n+"-hover-bg", r, theme.HoverBg, FormatHex)
		role("--ctbs-"+n+"-active-bg", r, theme.ActiveBg, FormatHex)
		role("--ctbs-"+n+"-hover-text", r, theme.HoverText, FormatHex)
		role("--ctbs-"+n+"-active-text", r, theme.ActiveText, FormatHex)
		role("--ctbs-"+n+"-striped-bg", r, theme.Striped, FormatHex)
	}

	return vars
}
