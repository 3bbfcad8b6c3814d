package theme

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/contrast"
	"github.com/jmylchreest/ctbs/internal/roles"
)

// Theme is a composed light theme with an optional dark counterpart.
type Theme struct {
	Light *Context
	Dark  *Context
}

// Contexts returns the non-nil contexts, light first.
func (t Theme) Contexts() []*Context {
	out := make([]*Context, 0, 2)
	if t.Light != nil {
		out = append(out, t.Light)
	}
	if t.Dark != nil {
		out = append(out, t.Dark)
	}
	return out
}

// Composer builds theme contexts from palettes.
type Composer struct {
	assigner *roles.Assigner
	solver   *contrast.Solver
	rules    Rules
	logger   hclog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithRules replaces the default rule set.
func WithRules(r Rules) Option {
	return func(c *Composer) {
		c.rules = r
	}
}

// WithLogger sets the logger used for composition diagnostics.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Composer. A nil assigner or solver is replaced by one
// built from defaults.
func New(assigner *roles.Assigner, solver *contrast.Solver, opts ...Option) *Composer {
	c := &Composer{
		assigner: assigner,
		solver:   solver,
		rules:    DefaultRules(),
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.assigner == nil {
		c.assigner = roles.NewAssigner(roles.DefaultDefaults(), c.logger.Named("roles"))
	}
	if c.solver == nil {
		c.solver = contrast.New(contrast.WithLogger(c.logger.Named("contrast")))
	}
	return c
}

// Rules returns the rule set in use.
func (c *Composer) Rules() Rules {
	return c.rules
}

// Compose builds the light context from light and, when dark is non-nil,
// the dark context from dark.
func (c *Composer) Compose(light, dark *colour.Palette) Theme {
	t := Theme{Light: c.ComposeVariant(light, PolarityLight)}
	if dark != nil {
		t.Dark = c.ComposeVariant(dark, PolarityDark)
	}
	return t
}

// ComposeVariant assigns roles from p and builds a single context.
func (c *Composer) ComposeVariant(p *colour.Palette, polarity Polarity) *Context {
	return c.ComposeRoles(c.assigner.Assign(p), polarity)
}

// ComposeRoles harmonizes an assigned role map against the body surface
// for polarity and freezes the result.
func (c *Composer) ComposeRoles(m roles.RoleMap, polarity Polarity) *Context {
	bodyBg := m.Get(roles.Light)
	if polarity == PolarityDark {
		bodyBg = m.Get(roles.Dark)
	}

	harmonized := m
	for _, r := range roles.Canonicals() {
		if r.IsNeutral() {
			continue
		}
		harmonized.Set(r, c.solver.EnsureContrastRatio(m.Get(r), bodyBg, c.rules.TextTarget))
	}

	border := colour.Lighten(m.Get(roles.Dark), 15)
	if colour.IsLight(bodyBg) {
		border = colour.Darken(m.Get(roles.Light), 15)
	}

	ctx := &Context{
		polarity:  polarity,
		roles:     harmonized,
		bodyBg:    bodyBg,
		bodyColor: c.solver.EnsureContrast(bodyBg, c.rules.TextTarget),
		emphasis:  c.solver.EnsureContrast(bodyBg, c.rules.TextTarget),
		link:      harmonized.Get(roles.Primary),
		border:    border,
		lightBody: colour.IsLight(bodyBg),
		solver:    c.solver,
		rules:     c.rules,
	}

	c.logger.Debug("composed context",
		"polarity", polarity.String(),
		"body-bg", ctx.bodyBg.Hex(),
		"body-color", ctx.bodyColor.Hex(),
		"link", ctx.link.Hex(),
		"border", ctx.border.Hex(),
	)
	return ctx
}
