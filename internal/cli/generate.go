package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ctbs/internal/css"
	"github.com/jmylchreest/ctbs/internal/version"
)

type generateOptions struct {
	inputs themeInputs
	output string
	prefix string
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	o := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [light-image]",
		Short: "Generate Bootstrap CSS variables from a palette",
		Long: `Generate Bootstrap 5 CSS custom properties from a colour palette.

The light palette comes from an image argument, a palette JSON file or a
hex list. A dark theme is added when a dark source is given, or derived
from the light palette with --derive-dark. Every text colour meets the
contrast target (default 7:1) against its background.

Examples:
  # Light theme from an image
  ctbs generate wallpaper.jpg > theme.css

  # Light and dark themes from two images
  ctbs generate day.jpg --dark-image night.jpg -o theme.css

  # Both themes from one palette
  ctbs generate --hex "#0d6efd,#dc3545,#ffc107" --derive-dark

  # Custom variable prefix
  ctbs generate wallpaper.jpg --prefix app`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g, o, args)
		},
	}

	addThemeFlags(cmd, &o.inputs)
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&o.prefix, "prefix", "", "replace the 'bs' in '--bs-' variable names")

	return cmd
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, g *globalOptions, o *generateOptions, args []string) error {
	if err := o.inputs.resolve(args); err != nil {
		return err
	}

	t, cfg, err := g.buildTheme(cmd.Context(), cmd.Flags(), &o.inputs, nil)
	if err != nil {
		return err
	}

	opts := cfg.CSSOptions()
	if cmd.Flags().Changed("prefix") {
		opts.Prefix = o.prefix
	}
	opts.Source = o.inputs.describe()
	opts.Version = version.Short()

	var buf bytes.Buffer
	if err := css.Render(&buf, t, opts); err != nil {
		return fmt.Errorf("failed to render CSS: %w", err)
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, buf.Bytes(), 0o644); err != nil { // #nosec G306 - stylesheets are public
			return fmt.Errorf("failed to write output file: %w", err)
		}
		g.logger.Info("wrote stylesheet", "path", o.output, "dark", t.Dark != nil)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
