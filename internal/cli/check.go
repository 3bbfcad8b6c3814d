package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ctbs/internal/contrast"
	"github.com/jmylchreest/ctbs/internal/theme"
)

type checkOptions struct {
	inputs       themeInputs
	format       string
	strict       bool
	failuresOnly bool
}

// contextReport is the JSON form of one audited context.
type contextReport struct {
	Polarity string        `json:"polarity"`
	Checks   []theme.Check `json:"checks"`
	Failures int           `json:"failures"`
}

// checkReport is the JSON output of the check command.
type checkReport struct {
	Contexts  []contextReport `json:"contexts"`
	Total     int             `json:"total"`
	Failures  int             `json:"failures"`
	Fallbacks int             `json:"fallbacks"`
}

func newCheckCmd(g *globalOptions) *cobra.Command {
	o := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [light-image]",
		Short: "Audit the contrast of a generated theme",
		Long: `Compose a theme exactly as 'generate' does and report the contrast ratio
of every text/background pair it renders.

Examples:
  # Audit the light theme of an image
  ctbs check wallpaper.jpg

  # Fail (exit 1) if any pair misses its target, for CI
  ctbs check --strict --hex "#0d6efd,#198754" --derive-dark

  # Machine readable
  ctbs check -f json wallpaper.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, g, o, args)
		},
	}

	addThemeFlags(cmd, &o.inputs)
	cmd.Flags().StringVarP(&o.format, "format", "f", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "exit with an error when any check fails")
	cmd.Flags().BoolVar(&o.failuresOnly, "failures", false, "only list failing checks")

	return cmd
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, g *globalOptions, o *checkOptions, args []string) error {
	if o.format != "table" && o.format != "json" {
		return fmt.Errorf("unsupported format: %s (supported: table, json)", o.format)
	}
	if err := o.inputs.resolve(args); err != nil {
		return err
	}

	var fallbacks int
	t, _, err := g.buildTheme(cmd.Context(), cmd.Flags(), &o.inputs, func(contrast.Fallback) { fallbacks++ })
	if err != nil {
		return err
	}

	report := checkReport{Fallbacks: fallbacks}
	for _, ctx := range t.Contexts() {
		checks := ctx.Audit()
		failed := theme.Failures(checks)
		report.Total += len(checks)
		report.Failures += len(failed)
		if o.failuresOnly {
			checks = failed
		}
		report.Contexts = append(report.Contexts, contextReport{
			Polarity: ctx.Polarity().String(),
			Checks:   checks,
			Failures: len(failed),
		})
	}

	out := cmd.OutOrStdout()
	if o.format == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
	} else if err := writeCheckTable(out, report); err != nil {
		return err
	}

	if o.strict && report.Failures > 0 {
		return fmt.Errorf("%d of %d contrast checks failed", report.Failures, report.Total)
	}
	return nil
}

func writeCheckTable(w io.Writer, report checkReport) error {
	table := NewTable([]string{"CONTEXT", "CHECK", "FG", "BG", "RATIO", "TARGET", "RESULT"})
	table.AlignRight(4, 5)
	for _, ctx := range report.Contexts {
		for _, c := range ctx.Checks {
			result := "pass"
			if !c.Pass {
				result = "FAIL"
			}
			table.AddRow([]string{
				ctx.Polarity,
				c.Name,
				c.FgHex,
				c.BgHex,
				fmt.Sprintf("%.2f", c.Ratio),
				fmt.Sprintf("%.1f", c.Target),
				result,
			})
		}
	}

	_, err := fmt.Fprintf(w, "%s\n%d checks, %d failed, %d contrast fallbacks\n",
		table.Render(), report.Total, report.Failures, report.Fallbacks)
	return err
}
