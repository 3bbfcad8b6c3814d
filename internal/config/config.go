// Package config loads ctbs settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/contrast"
	"github.com/jmylchreest/ctbs/internal/css"
	"github.com/jmylchreest/ctbs/internal/roles"
	"github.com/jmylchreest/ctbs/internal/theme"
)

// Environment variables read by ApplyEnv and Path.
const (
	EnvConfig   = "CTBS_CONFIG"
	EnvTarget   = "CTBS_TARGET"
	EnvClusters = "CTBS_CLUSTERS"
	EnvBlur     = "CTBS_BLUR"
)

// Config is the full settings tree.
type Config struct {
	Contrast Contrast `toml:"contrast"`
	Defaults Colours  `toml:"defaults"`
	Extract  Extract  `toml:"extract"`
	Output   Output   `toml:"output"`
}

// Contrast holds the contrast thresholds.
type Contrast struct {
	Target       float64 `toml:"target"`
	Buffer       float64 `toml:"buffer"`
	ButtonTarget float64 `toml:"button_target"`
}

// Colours holds the fallback role colours as hex strings.
type Colours struct {
	Primary string `toml:"primary"`
	Light   string `toml:"light"`
	Dark    string `toml:"dark"`
	Gray    string `toml:"gray"`
}

// Extract controls palette extraction.
type Extract struct {
	Clusters     int     `toml:"clusters"`
	DarkClusters int     `toml:"dark_clusters"`
	Blur         bool    `toml:"blur"`
	BlurRadius   float64 `toml:"blur_radius"`
	Algorithm    string  `toml:"algorithm"`
	Seed         uint64  `toml:"seed"`
}

// Output controls CSS rendering.
type Output struct {
	Prefix string `toml:"prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	d := roles.DefaultDefaults()
	return Config{
		Contrast: Contrast{
			Target:       contrast.TargetAAA,
			Buffer:       contrast.DefaultBuffer,
			ButtonTarget: contrast.TargetLarge,
		},
		Defaults: Colours{
			Primary: d.Primary.Hex(),
			Light:   d.Light.Hex(),
			Dark:    d.Dark.Hex(),
			Gray:    d.Gray.Hex(),
		},
		Extract: Extract{
			Clusters:     12,
			DarkClusters: 12,
			Blur:         true,
			BlurRadius:   8,
			Algorithm:    string(colour.AlgorithmKMeans),
		},
	}
}

// Path returns flagValue when set, otherwise $CTBS_CONFIG.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvConfig)
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r into cfg. Keys absent from the document keep
// their current values; unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables looked up with
// lookup, normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTarget); ok && v != "" {
		target, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTarget, err)
		}
		c.Contrast.Target = target
	}
	if v, ok := lookup(EnvClusters); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvClusters, err)
		}
		c.Extract.Clusters = n
		c.Extract.DarkClusters = n
	}
	if v, ok := lookup(EnvBlur); ok && v != "" {
		blur, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBlur, err)
		}
		c.Extract.Blur = blur
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	var errs []error

	if c.Contrast.Target < 1 || c.Contrast.Target > 21 {
		errs = append(errs, fmt.Errorf("contrast.target %.2f out of range [1,21]", c.Contrast.Target))
	}
	if c.Contrast.ButtonTarget < 1 || c.Contrast.ButtonTarget > 21 {
		errs = append(errs, fmt.Errorf("contrast.button_target %.2f out of range [1,21]", c.Contrast.ButtonTarget))
	}
	if c.Contrast.Buffer < 0 || c.Contrast.Buffer > 1 {
		errs = append(errs, fmt.Errorf("contrast.buffer %.2f out of range [0,1]", c.Contrast.Buffer))
	}
	if _, err := c.RoleDefaults(); err != nil {
		errs = append(errs, err)
	}

	for _, f := range []struct {
		name string
		n    int
	}{
		{"extract.clusters", c.Extract.Clusters},
		{"extract.dark_clusters", c.Extract.DarkClusters},
	} {
		cfg := colour.ExtractorConfig{Algorithm: colour.Algorithm(c.Extract.Algorithm), ColorCount: f.n}
		if err := cfg.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
		}
	}
	if c.Extract.BlurRadius < 0 {
		errs = append(errs, fmt.Errorf("extract.blur_radius must not be negative"))
	}

	if err := c.CSSOptions().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("output.prefix: %w", err))
	}

	return errors.Join(errs...)
}

// RoleDefaults converts the fallback colours.
func (c Config) RoleDefaults() (roles.Defaults, error) {
	d := roles.DefaultDefaults()
	fields := []struct {
		name string
		hex  string
		dst  *colour.RGB
	}{
		{"defaults.primary", c.Defaults.Primary, &d.Primary},
		{"defaults.light", c.Defaults.Light, &d.Light},
		{"defaults.dark", c.Defaults.Dark, &d.Dark},
		{"defaults.gray", c.Defaults.Gray, &d.Gray},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		rgb, err := colour.ParseHex(f.hex)
		if err != nil {
			return d, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = rgb
	}
	return d, nil
}

// SolverOptions converts the contrast settings.
func (c Config) SolverOptions() []contrast.Option {
	return []contrast.Option{contrast.WithBuffer(c.Contrast.Buffer)}
}

// Rules converts the contrast settings into theme rules.
func (c Config) Rules() theme.Rules {
	r := theme.DefaultRules()
	r.TextTarget = c.Contrast.Target
	r.ButtonTarget = c.Contrast.ButtonTarget
	return r
}

// CSSOptions converts the output settings.
func (c Config) CSSOptions() css.Options {
	return css.Options{Prefix: c.Output.Prefix}
}
