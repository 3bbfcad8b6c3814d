// Package cli provides the command-line interface for ctbs.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/ctbs/internal/config"
	"github.com/jmylchreest/ctbs/internal/version"
)

// globalOptions carries the persistent flags and the state they produce.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool

	cfg    config.Config
	logger hclog.Logger
}

// NewRootCmd builds the command tree. Each call returns independent
// commands and flag state.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{cfg: config.Default(), logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "ctbs",
		Short: "Accessible Bootstrap themes from images",
		Long: `ctbs extracts a colour palette from an image and derives a Bootstrap 5
theme from it. Every text colour the theme produces is adjusted until it
meets WCAG AAA contrast (7:1) against the surface it is drawn on.

Settings are read from a TOML file (--config or $CTBS_CONFIG), then from
CTBS_TARGET, CTBS_CLUSTERS and CTBS_BLUR, then from flags.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default $"+config.EnvConfig+")")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(g))
	rootCmd.AddCommand(newGenerateCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))

	return rootCmd
}

// setup builds the logger and loads the configuration.
func (g *globalOptions) setup(stderr io.Writer) error {
	g.logger = newLogger(stderr, g.verbose, g.quiet)

	path := config.Path(g.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if path != "" {
		g.logger.Debug("loaded config", "path", path)
	}
	g.cfg = cfg
	return nil
}

// newLogger creates the CLI logger. Verbose enables debug output, quiet
// limits it to errors.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "ctbs",
		Level:  level,
		Output: w,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
