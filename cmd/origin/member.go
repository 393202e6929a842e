package origin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
)

var memberAddCmd = &cobra.Command{
	Use:   "member-add <origin> <user>",
	Short: "Grant a user membership of an origin",
	Args:  cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		origin, user := args[0], args[1]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		if err := c.AddOriginMember(cmd.Context(), origin, user); err != nil {
			return cmdutil.TranslateError(err)
		}

		output.Success("added %q to origin %q", user, origin)
		return nil
	},
}

var memberRmCmd = &cobra.Command{
	Use:   "member-rm <origin> <user>",
	Short: "Revoke a user's membership of an origin",
	Args:  cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		origin, user := args[0], args[1]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		if err := c.RemoveOriginMember(cmd.Context(), origin, user); err != nil {
			return cmdutil.TranslateError(err)
		}

		output.Success("removed %q from origin %q", user, origin)
		return nil
	},
}
