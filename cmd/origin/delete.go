package origin

import (
	"fmt"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an origin",
	Long: wordwrap.WrapString(
		"Delete an origin from the depot, along with every package and key "+
			"published under it. This cannot be undone.",
		80),
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		if err := c.DeleteOrigin(cmd.Context(), name); err != nil {
			return cmdutil.TranslateError(err)
		}

		output.Success("deleted origin %q", name)
		return nil
	},
}
