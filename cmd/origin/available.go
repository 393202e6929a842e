package origin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
)

var availableCmd = &cobra.Command{
	Use:   "available <name>",
	Short: "Check whether an origin name is still unclaimed",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		available, err := c.OriginAvailable(cmd.Context(), name)
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		if available {
			output.Success("origin %q is available", name)
			return nil
		}
		output.Error(fmt.Errorf("origin %q is already taken", name))
		return cmdutil.NewHandledCliError(fmt.Errorf("origin %q taken", name))
	},
}
