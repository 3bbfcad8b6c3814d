// Package contrast repairs foreground colours until they meet a WCAG
// contrast target against a background.
package contrast

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/ctbs/internal/colour"
)

const (
	// TargetAAA is the WCAG AAA ratio for normal text.
	TargetAAA = 7.0
	// TargetAA is the WCAG AA ratio for normal text.
	TargetAA = 4.5
	// TargetLarge is the WCAG ratio for large text and UI fills.
	TargetLarge = 3.0

	// DefaultBuffer is added to every hue-preserving target.
	DefaultBuffer = 0.1
)

// FallbackKind classifies a fallback decision.
type FallbackKind int

const (
	// FallbackMonochrome means the hue could not be kept and pure black or
	// white was substituted; the target is still met.
	FallbackMonochrome FallbackKind = iota
	// FallbackShortfall means no candidate met the target and the best
	// available colour was returned.
	FallbackShortfall
)

// String returns the string representation of a FallbackKind.
func (k FallbackKind) String() string {
	switch k {
	case FallbackMonochrome:
		return "monochrome"
	case FallbackShortfall:
		return "shortfall"
	default:
		return "unknown"
	}
}

// Fallback describes a single fallback decision.
type Fallback struct {
	Kind       FallbackKind
	Operation  string
	Foreground colour.RGB
	Background colour.RGB
	Result     colour.RGB
	Achieved   float64
	Target     float64
}

// Met reports whether the fallback result still satisfies its target.
func (f Fallback) Met() bool {
	return f.Achieved >= f.Target
}

// Solver searches for colours meeting a contrast target.
// A Solver holds no mutable state and is safe for concurrent use as long
// as its observer is.
type Solver struct {
	buffer     float64
	logger     hclog.Logger
	onFallback func(Fallback)
}

// Option configures a Solver.
type Option func(*Solver)

// WithBuffer overrides the safety margin added to hue-preserving targets.
func WithBuffer(buffer float64) Option {
	return func(s *Solver) {
		if buffer >= 0 {
			s.buffer = buffer
		}
	}
}

// WithLogger sets the logger fallback decisions are written to.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFallbackObserver registers a callback invoked for every fallback.
func WithFallbackObserver(fn func(Fallback)) Option {
	return func(s *Solver) {
		s.onFallback = fn
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		buffer: DefaultBuffer,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buffer returns the configured safety margin.
func (s *Solver) Buffer() float64 {
	return s.buffer
}

// report records a fallback decision.
func (s *Solver) report(f Fallback) {
	args := []any{
		"op", f.Operation,
		"fg", f.Foreground.Hex(),
		"bg", f.Background.Hex(),
		"result", f.Result.Hex(),
		"ratio", roundRatio(f.Achieved),
		"target", f.Target,
	}
	if f.Kind == FallbackShortfall {
		s.logger.Warn("contrast target not reachable", args...)
	} else {
		s.logger.Debug("hue dropped to reach contrast target", args...)
	}
	if s.onFallback != nil {
		s.onFallback(f)
	}
}

func roundRatio(r float64) float64 {
	return float64(int(r*100+0.5)) / 100
}
