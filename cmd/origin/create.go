package origin

import (
	"fmt"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new origin",
	Long: wordwrap.WrapString(
		"Create a new origin with the given name. The name is reserved on the "+
			"depot and you become its first member.",
		80),
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		origin, err := c.CreateOrigin(cmd.Context(), name)
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		output.Success("created origin %q", origin.Name)
		return nil
	},
}
