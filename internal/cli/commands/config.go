package commands

import (
	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after applying defaults, the config file,
LEAPCALC_* environment variables and command-line flags, in that order.`,
		Example: `  leapcalc config
  LEAPCALC_ANGLE_MODE=rad leapcalc config
  leapcalc --config ./leapcalc.yaml config -o json`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContextWithoutSession(cmd)
	r := cmdCtx.Renderer

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(cmdCtx.Cfg)
	}

	if file := config.GetConfigFileUsed(); file != "" {
		r.Println("# config file: " + file)
	} else {
		r.Println("# config file: none")
	}
	return r.YAML(cmdCtx.Cfg)
}
