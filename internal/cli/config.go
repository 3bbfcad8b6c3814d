package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ctbs/internal/config"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration after the config file and environment overrides
are applied. With --defaults the built-in settings are printed instead,
which is a convenient starting point for a config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			if defaults {
				cfg = config.Default()
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults")
	return cmd
}
