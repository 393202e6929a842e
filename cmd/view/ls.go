package view

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/pkg/config"
)

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List the views on the depot",
	Args:    cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		views, err := c.ListViews(cmd.Context())
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		for _, v := range views {
			cmd.Println(v)
		}
		return nil
	},
}
