package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/config"
	"github.com/jmylchreest/ctbs/internal/contrast"
	"github.com/jmylchreest/ctbs/internal/image"
	"github.com/jmylchreest/ctbs/internal/roles"
	"github.com/jmylchreest/ctbs/internal/theme"
	httputil "github.com/jmylchreest/ctbs/internal/util/http"
)

// paletteSource names where one palette comes from. At most one field is
// set.
type paletteSource struct {
	image   string
	palette string
	hex     string
}

func (s paletteSource) empty() bool {
	return s.image == "" && s.palette == "" && s.hex == ""
}

func (s paletteSource) count() int {
	n := 0
	for _, v := range []string{s.image, s.palette, s.hex} {
		if v != "" {
			n++
		}
	}
	return n
}

// String describes the source for the CSS header.
func (s paletteSource) String() string {
	switch {
	case s.image != "":
		if image.IsURL(s.image) {
			return s.image
		}
		return filepath.Base(s.image)
	case s.palette != "":
		return filepath.Base(s.palette)
	case s.hex != "":
		return "hex list"
	}
	return ""
}

// extractOptions are the flags that override [extract] and [contrast]
// settings. They only apply when set on the command line.
type extractOptions struct {
	clusters     int
	darkClusters int
	blur         bool
	blurRadius   float64
	seed         uint64
	target       float64

	cacheDir string
	timeout  time.Duration
}

func addExtractFlags(fs *pflag.FlagSet, o *extractOptions, withDark bool) {
	d := config.Default()
	fs.IntVarP(&o.clusters, "clusters", "c", d.Extract.Clusters, "number of colours to extract (1-256)")
	if withDark {
		fs.IntVar(&o.darkClusters, "dark-clusters", d.Extract.DarkClusters, "number of colours to extract from the dark image")
	}
	fs.BoolVar(&o.blur, "blur", d.Extract.Blur, "blur the image before extraction")
	fs.Float64Var(&o.blurRadius, "blur-radius", d.Extract.BlurRadius, "Gaussian blur radius in pixels")
	fs.Uint64Var(&o.seed, "seed", 0, "seed for reproducible extraction (0 = random)")
	fs.StringVar(&o.cacheDir, "cache-dir", "", "cache downloaded images in this directory")
	fs.DurationVar(&o.timeout, "timeout", httputil.DefaultTimeout, "timeout for image downloads")
}

func addTargetFlag(fs *pflag.FlagSet, o *extractOptions) {
	fs.Float64Var(&o.target, "target", contrast.TargetAAA, "minimum contrast ratio for text")
}

// apply copies the flags the user set onto cfg.
func (o *extractOptions) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("clusters") {
		cfg.Extract.Clusters = o.clusters
		if fs.Lookup("dark-clusters") == nil || !fs.Changed("dark-clusters") {
			cfg.Extract.DarkClusters = o.clusters
		}
	}
	if fs.Changed("dark-clusters") {
		cfg.Extract.DarkClusters = o.darkClusters
	}
	if fs.Changed("blur") {
		cfg.Extract.Blur = o.blur
	}
	if fs.Changed("blur-radius") {
		cfg.Extract.BlurRadius = o.blurRadius
	}
	if fs.Changed("seed") {
		cfg.Extract.Seed = o.seed
	}
	if fs.Changed("target") {
		cfg.Contrast.Target = o.target
	}
}

// themeInputs are the sources shared by generate and check.
type themeInputs struct {
	light      paletteSource
	dark       paletteSource
	deriveDark bool
	extract    extractOptions
}

func addThemeFlags(cmd *cobra.Command, in *themeInputs) {
	fs := cmd.Flags()
	fs.StringVar(&in.light.palette, "palette", "", "light palette JSON file (from 'ctbs extract -f json')")
	fs.StringVar(&in.light.hex, "hex", "", "light palette as a comma separated hex list")
	fs.StringVar(&in.dark.image, "dark-image", "", "image for the dark theme")
	fs.StringVar(&in.dark.palette, "dark-palette", "", "dark palette JSON file")
	fs.StringVar(&in.dark.hex, "dark-hex", "", "dark palette as a comma separated hex list")
	fs.BoolVar(&in.deriveDark, "derive-dark", false, "build the dark theme from the light palette")
	addExtractFlags(fs, &in.extract, true)
	addTargetFlag(fs, &in.extract)

	cmd.MarkFlagsMutuallyExclusive("palette", "hex")
	cmd.MarkFlagsMutuallyExclusive("derive-dark", "dark-image", "dark-palette", "dark-hex")
}

// resolve validates the sources against the positional arguments.
func (in *themeInputs) resolve(args []string) error {
	if len(args) > 0 {
		in.light.image = args[0]
	}
	switch in.light.count() {
	case 0:
		return errors.New("no palette source: give an image, --palette or --hex")
	case 1:
	default:
		return errors.New("give only one of an image, --palette or --hex")
	}
	if in.dark.count() > 1 {
		return errors.New("give only one of --dark-image, --dark-palette or --dark-hex")
	}
	return nil
}

// settings returns the configuration with command line overrides applied.
func (g *globalOptions) settings(fs *pflag.FlagSet, o *extractOptions) (config.Config, error) {
	cfg := g.cfg
	o.apply(fs, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadPalette reads a palette from src, extracting count colours when src
// is an image.
func (g *globalOptions) loadPalette(ctx context.Context, cfg config.Config, o extractOptions, src paletteSource, count int) (*colour.Palette, error) {
	switch {
	case src.hex != "":
		return colour.ParseHexList(src.hex)
	case src.palette != "":
		data, err := os.ReadFile(src.palette)
		if err != nil {
			return nil, fmt.Errorf("failed to read palette: %w", err)
		}
		return colour.LoadPaletteJSON(data)
	case src.image != "":
		return g.extractImage(ctx, cfg, o, src.image, count)
	}
	return nil, errors.New("no palette source")
}

// extractImage loads, prepares and clusters an image.
func (g *globalOptions) extractImage(ctx context.Context, cfg config.Config, o extractOptions, path string, count int) (*colour.Palette, error) {
	logger := g.logger.Named("extract")

	loader := image.NewSmartLoader(o.timeout, logger)
	if cfg.Extract.Seed != 0 {
		loader.WithSeed(cfg.Extract.Seed)
	}
	if o.cacheDir != "" {
		loader.WithCache(o.cacheDir)
	}

	img, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "path", path, "width", bounds.Dx(), "height", bounds.Dy())

	img, err = image.Prepare(img, image.PrepareOptions{
		Blur:         cfg.Extract.Blur,
		BlurRadius:   cfg.Extract.BlurRadius,
		MaxDimension: image.DefaultMaxDimension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	extractor, err := newExtractor(cfg, count)
	if err != nil {
		return nil, err
	}
	palette, err := extractor.Extract(img, count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Debug("extracted palette", "colours", palette.Len(), "blur", cfg.Extract.Blur)
	return palette, nil
}

func newExtractor(cfg config.Config, count int) (colour.Extractor, error) {
	extractor, err := colour.NewExtractor(colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(cfg.Extract.Algorithm),
		ColorCount: count,
		Seed:       cfg.Extract.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	return extractor, nil
}

// newComposer wires the engine from cfg. observer, when non-nil, receives
// every contrast fallback.
func (g *globalOptions) newComposer(cfg config.Config, observer func(contrast.Fallback)) (*theme.Composer, error) {
	defaults, err := cfg.RoleDefaults()
	if err != nil {
		return nil, err
	}

	opts := append(cfg.SolverOptions(), contrast.WithLogger(g.logger.Named("contrast")))
	if observer != nil {
		opts = append(opts, contrast.WithFallbackObserver(observer))
	}
	solver := contrast.New(opts...)
	assigner := roles.NewAssigner(defaults, g.logger.Named("roles"))

	return theme.New(assigner, solver,
		theme.WithRules(cfg.Rules()),
		theme.WithLogger(g.logger.Named("theme")),
	), nil
}

// buildTheme loads the palettes named by in and composes the theme.
func (g *globalOptions) buildTheme(ctx context.Context, fs *pflag.FlagSet, in *themeInputs, observer func(contrast.Fallback)) (theme.Theme, config.Config, error) {
	cfg, err := g.settings(fs, &in.extract)
	if err != nil {
		return theme.Theme{}, cfg, err
	}
	composer, err := g.newComposer(cfg, observer)
	if err != nil {
		return theme.Theme{}, cfg, err
	}

	light, err := g.loadPalette(ctx, cfg, in.extract, in.light, cfg.Extract.Clusters)
	if err != nil {
		return theme.Theme{}, cfg, err
	}

	switch {
	case in.deriveDark:
		return theme.Theme{
			Light: composer.ComposeVariant(light, theme.PolarityLight),
			Dark:  composer.ComposeVariant(light, theme.PolarityDark),
		}, cfg, nil
	case !in.dark.empty():
		dark, err := g.loadPalette(ctx, cfg, in.extract, in.dark, cfg.Extract.DarkClusters)
		if err != nil {
			return theme.Theme{}, cfg, fmt.Errorf("dark palette: %w", err)
		}
		return composer.Compose(light, dark), cfg, nil
	}
	return composer.Compose(light, nil), cfg, nil
}

// describe names the sources for the CSS header.
func (in *themeInputs) describe() string {
	parts := []string{in.light.String()}
	switch {
	case in.deriveDark:
		parts = append(parts, "dark: derived")
	case !in.dark.empty():
		parts = append(parts, "dark: "+in.dark.String())
	}
	return strings.Join(parts, ", ")
}
