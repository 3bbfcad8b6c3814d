package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/roles"
)

type extractCmdOptions struct {
	extract extractOptions
	format  string
	output  string
	preview string
	roles   bool
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	o := &extractCmdOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a colour palette from an image using k-means clustering.

The image may be a file, a directory (one image is picked at random) or an
HTTP(S) URL. Supported image formats: JPEG, PNG, GIF, WebP.

Examples:
  # Extract 12 colours (default) from an image
  ctbs extract wallpaper.jpg

  # Extract 8 colours with swatches
  ctbs extract --preview always -c 8 wallpaper.png

  # Save a palette for 'ctbs generate --palette'
  ctbs extract -f json -o palette.json wallpaper.jpg

  # Show the Bootstrap roles the palette maps to
  ctbs extract --roles wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, o, args[0])
		},
	}

	fs := cmd.Flags()
	addExtractFlags(fs, &o.extract, false)
	fs.StringVarP(&o.format, "format", "f", "hex", "output format (hex, rgb, json)")
	fs.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&o.preview, "preview", string(colour.PreviewAuto), "colour swatches (auto, always, never)")
	fs.BoolVar(&o.roles, "roles", false, "show the Bootstrap role assignment instead of the palette")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, g *globalOptions, o *extractCmdOptions, path string) error {
	mode, err := parsePreviewMode(o.preview)
	if err != nil {
		return err
	}

	cfg, err := g.settings(cmd.Flags(), &o.extract)
	if err != nil {
		return err
	}

	palette, err := g.extractImage(cmd.Context(), cfg, o.extract, path, cfg.Extract.Clusters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.output != "" {
		mode = colour.PreviewNever
	}
	previewer := colour.DetectPreviewer(asFile(out), mode)

	var output string
	if o.roles {
		defaults, err := cfg.RoleDefaults()
		if err != nil {
			return err
		}
		m := roles.NewAssigner(defaults, g.logger.Named("roles")).Assign(palette)
		output, err = formatRoles(m, o.format, previewer)
		if err != nil {
			return err
		}
	} else {
		output, err = formatPalette(palette, o.format, previewer)
		if err != nil {
			return err
		}
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(output), 0o644); err != nil { // #nosec G306 - palette files are not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		g.logger.Debug("wrote palette", "path", o.output)
		return nil
	}
	_, err = io.WriteString(out, output)
	return err
}

func parsePreviewMode(s string) (colour.PreviewMode, error) {
	switch mode := colour.PreviewMode(s); mode {
	case colour.PreviewAuto, colour.PreviewAlways, colour.PreviewNever:
		return mode, nil
	}
	return "", fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", s)
}

// asFile returns w as an *os.File when it is one, for terminal detection.
func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, p *colour.Previewer) (string, error) {
	var sb strings.Builder
	switch format {
	case "hex":
		for _, c := range palette.All() {
			if p.Enabled() {
				sb.WriteString(p.FormatWithPreview(c, 8))
			} else {
				sb.WriteString(c.Hex())
			}
			sb.WriteString("\n")
		}
	case "rgb":
		for _, c := range palette.All() {
			if p.Enabled() {
				sb.WriteString(p.Swatch(c, 8) + "  ")
			}
			sb.WriteString(c.String() + "\n")
		}
	case "json":
		data, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		sb.Write(data)
		sb.WriteString("\n")
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
	return sb.String(), nil
}

// formatRoles formats a role assignment, one canonical role per line.
func formatRoles(m roles.RoleMap, format string, p *colour.Previewer) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(m.Hex(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "hex", "rgb":
		var sb strings.Builder
		for _, r := range roles.Canonicals() {
			c := m.Get(r)
			value := c.Hex()
			if format == "rgb" {
				value = c.String()
			}
			if p.Enabled() {
				fmt.Fprintf(&sb, "%s  %-10s %s\n", p.Swatch(c, 8), r, value)
			} else {
				fmt.Fprintf(&sb, "%-10s %s\n", r, value)
			}
		}
		return sb.String(), nil
	}
	return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
}
