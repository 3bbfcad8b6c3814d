package theme

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/contrast"
	"github.com/jmylchreest/ctbs/internal/roles"
)

func scenarioPalette() *colour.Palette {
	return colour.NewPalette([]colour.RGB{
		{R: 222, G: 226, B: 226},
		{R: 13, G: 110, B: 253},
		{R: 25, G: 135, B: 84},
		{R: 220, G: 53, B: 69},
		{R: 255, G: 193, B: 7},
		{R: 33, G: 37, B: 41},
	})
}

func randomPalette(rng *rand.Rand) *colour.Palette {
	colours := make([]colour.RGB, 1+rng.IntN(8))
	for i := range colours {
		colours[i] = colour.RGB{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256))}
	}
	return colour.NewPalette(colours)
}

func TestComposeScenarioBody(t *testing.T) {
	th := New(nil, nil).Compose(scenarioPalette(), nil)
	require.NotNil(t, th.Light)
	assert.Nil(t, th.Dark)
	assert.Len(t, th.Contexts(), 1)

	ctx := th.Light
	assert.Equal(t, PolarityLight, ctx.Polarity())
	assert.True(t, ctx.LightBody())
	assert.GreaterOrEqual(t, colour.ContrastRatio(ctx.BodyColor(), ctx.BodyBg()), 7.0)
	assert.Equal(t, ctx.Role(roles.Light), ctx.BodyBg())
	assert.Equal(t, ctx.Role(roles.Primary), ctx.Link())
}

func TestComposeDarkContext(t *testing.T) {
	th := New(nil, nil).Compose(scenarioPalette(), scenarioPalette())
	require.NotNil(t, th.Dark)
	assert.Len(t, th.Contexts(), 2)

	ctx := th.Dark
	assert.Equal(t, PolarityDark, ctx.Polarity())
	assert.False(t, ctx.LightBody())
	assert.Equal(t, ctx.Role(roles.Dark), ctx.BodyBg())
	assert.Equal(t, colour.White, ctx.BodyColor())
	assert.Equal(t, colour.Lighten(ctx.Role(roles.Dark), 15), ctx.Border())
}

func TestHarmonizedRolesMeetTextTarget(t *testing.T) {
	c := New(nil, nil)
	for _, polarity := range []Polarity{PolarityLight, PolarityDark} {
		ctx := c.ComposeVariant(scenarioPalette(), polarity)
		for _, r := range roles.All() {
			if r.IsNeutral() {
				continue
			}
			ratio := colour.ContrastRatio(ctx.Role(r), ctx.BodyBg())
			assert.GreaterOrEqual(t, ratio, 7.0, "%s %s", polarity, r)
		}
	}
}

func TestAuditPassesForScenario(t *testing.T) {
	th := New(nil, nil).Compose(scenarioPalette(), scenarioPalette())
	for _, ctx := range th.Contexts() {
		checks := ctx.Audit()
		require.NotEmpty(t, checks)
		assert.Empty(t, Failures(checks), "polarity %s", ctx.Polarity())
	}
}

func TestAuditPassesForDerivedDark(t *testing.T) {
	// A dark context built from the light palette uses the Dark role as body.
	ctx := New(nil, nil).ComposeVariant(scenarioPalette(), PolarityDark)
	assert.Empty(t, Failures(ctx.Audit()))
}

func TestAuditCoversRoles(t *testing.T) {
	ctx := New(nil, nil).ComposeVariant(scenarioPalette(), PolarityLight)
	names := make(map[string]bool)
	for _, ch := range ctx.Audit() {
		names[ch.Name] = true
		assert.Equal(t, ch.Foreground.Hex(), ch.FgHex)
		assert.InDelta(t, colour.ContrastRatio(ch.Foreground, ch.Background), ch.Ratio, 1e-9)
	}
	for _, want := range []string{"body", "link", "primary-text", "teal-btn-hover", "gray-badge", "danger-text-emphasis-subtle"} {
		assert.True(t, names[want], want)
	}
	assert.False(t, names["light-text"], "neutral roles are not audited")
}

func TestFailures(t *testing.T) {
	checks := []Check{
		newCheck("ok", colour.Black, colour.White, 7),
		newCheck("bad", colour.White, colour.White, 7),
	}
	failed := Failures(checks)
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].Name)
}

func TestBgSubtleBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	c := New(nil, nil)

	for i := 0; i < 60; i++ {
		p := randomPalette(rng)
		light := c.ComposeVariant(p, PolarityLight)
		dark := c.ComposeVariant(p, PolarityDark)
		for _, r := range roles.Canonicals() {
			require.GreaterOrEqual(t, light.Resolve(r, BgSubtle).HSL().L, 96.0, "light %s %v", r, p.Colors)
			require.LessOrEqual(t, dark.Resolve(r, BgSubtle).HSL().L, 8.0, "dark %s %v", r, p.Colors)
		}
	}
}

func TestButtonFillsAvoidDeadZone(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 1))
	c := New(nil, nil)
	rules := c.Rules()

	for i := 0; i < 60; i++ {
		p := randomPalette(rng)
		for _, polarity := range []Polarity{PolarityLight, PolarityDark} {
			ctx := c.ComposeVariant(p, polarity)
			for _, r := range roles.Canonicals() {
				for _, v := range []Variant{ButtonBg, ButtonHoverBg} {
					fill := ctx.Resolve(r, v)
					lum := colour.Luminance(fill)
					l := fill.HSL().L
					inZone := lum >= rules.DeadZoneLow && lum <= rules.DeadZoneHigh
					require.False(t, inZone && l > 0 && l < 100,
						"%s %s %s: %s luminance %.3f", polarity, r, v, fill.Hex(), lum)
				}
			}
		}
	}
}

func TestAvoidDeadZone(t *testing.T) {
	ctx := New(nil, nil).ComposeVariant(scenarioPalette(), PolarityLight)

	upper := colour.RGB{R: 140, G: 140, B: 140} // luminance ~0.26
	lower := colour.RGB{R: 100, G: 100, B: 100} // luminance ~0.13

	got := ctx.avoidDeadZone(upper)
	assert.Greater(t, colour.Luminance(got), 0.30)
	assert.Greater(t, got.HSL().L, upper.HSL().L)

	got = ctx.avoidDeadZone(lower)
	assert.Less(t, colour.Luminance(got), 0.10)
	assert.Less(t, got.HSL().L, lower.HSL().L)

	assert.Equal(t, colour.White, ctx.avoidDeadZone(colour.White))
}

func TestVariantDirections(t *testing.T) {
	c := New(nil, nil)
	light := c.ComposeVariant(scenarioPalette(), PolarityLight)
	dark := c.ComposeVariant(scenarioPalette(), PolarityDark)

	for _, ctx := range []*Context{light, dark} {
		base := ctx.Resolve(roles.Danger, Base).HSL().L
		hover := ctx.Resolve(roles.Danger, HoverBg).HSL().L
		border := ctx.Resolve(roles.Danger, BorderSubtle).HSL().L
		striped := ctx.Resolve(roles.Danger, Striped).HSL().L

		if ctx.LightBody() {
			assert.Less(t, hover, base)
			assert.Greater(t, border, base)
			assert.Less(t, striped, base)
		} else {
			assert.Greater(t, hover, base)
			assert.Less(t, border, base)
			assert.Greater(t, striped, base)
		}
		assert.Equal(t, ctx.Resolve(roles.Danger, HoverBg), ctx.Resolve(roles.Danger, ActiveBg))
		assert.Equal(t, ctx.Resolve(roles.Danger, Base), ctx.Resolve(roles.Danger, OutlineBorder))
	}
}

func TestResolveAliases(t *testing.T) {
	ctx := New(nil, nil).ComposeVariant(scenarioPalette(), PolarityLight)
	for _, alias := range roles.Aliases() {
		for _, v := range Variants() {
			assert.Equal(t, ctx.Resolve(alias.Canonical(), v), ctx.Resolve(alias, v), "%s %s", alias, v)
		}
	}
}

func TestContextIsFrozen(t *testing.T) {
	ctx := New(nil, nil).ComposeVariant(scenarioPalette(), PolarityLight)
	before := ctx.Role(roles.Primary)

	m := ctx.Roles()
	m.Set(roles.Primary, colour.Black)
	assert.Equal(t, before, ctx.Role(roles.Primary))
}

func TestComposeIsDeterministic(t *testing.T) {
	a := New(nil, nil).ComposeVariant(scenarioPalette(), PolarityLight)
	b := New(nil, nil).ComposeVariant(scenarioPalette(), PolarityLight)
	assert.Equal(t, a.Roles(), b.Roles())
	assert.Equal(t, a.Audit(), b.Audit())
}

func TestGrayShade(t *testing.T) {
	ctx := New(nil, nil).ComposeVariant(scenarioPalette(), PolarityLight)
	gray := ctx.Role(roles.Gray)

	assert.Equal(t, gray, ctx.GrayShade(500))
	assert.Equal(t, colour.Darken(gray, 10), ctx.GrayShade(600))
	assert.Equal(t, colour.Lighten(gray, 40), ctx.GrayShade(100))
}

func TestComposeWithFallbackObserver(t *testing.T) {
	var events []contrast.Fallback
	solver := contrast.New(contrast.WithFallbackObserver(func(f contrast.Fallback) {
		events = append(events, f)
	}))
	rules := DefaultRules()
	rules.TextTarget = 21

	ctx := New(nil, solver, WithRules(rules)).ComposeVariant(scenarioPalette(), PolarityLight)
	assert.NotEmpty(t, events, "an unreachable text target reports fallbacks")
	assert.NotEmpty(t, Failures(ctx.Audit()))
}

func TestVariantNames(t *testing.T) {
	for _, v := range Variants() {
		parsed, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
	_, err := ParseVariant("glow")
	assert.Error(t, err)
	assert.Equal(t, "variant(99)", Variant(99).String())
	assert.Equal(t, "dark", PolarityDark.String())
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{name: "text target", mutate: func(r *Rules) { r.TextTarget = 30 }},
		{name: "button target", mutate: func(r *Rules) { r.ButtonTarget = 0.5 }},
		{name: "inverted zone", mutate: func(r *Rules) { r.DeadZoneLow = 0.5 }},
		{name: "zero nudge", mutate: func(r *Rules) { r.DeadZoneNudge = 0 }},
		{name: "negative delta", mutate: func(r *Rules) { r.HoverDelta = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestRulesValidateReportsFirstDelta(t *testing.T) {
	r := DefaultRules()
	r.SubtleDelta = 120
	r.StripedDelta = -5
	for range 20 {
		err := r.Validate()
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "subtle delta"), err.Error())
	}
}
