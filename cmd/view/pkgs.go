package view

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/depot"
)

var pkgsCmd = &cobra.Command{
	Use:   "pkgs <view> <ident>",
	Short: "List the packages in a view matching an ident",
	Args:  cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		view := args[0]

		ident, err := depot.ParseIdent(args[1])
		if err != nil {
			if originErr := depot.ValidOriginName(args[1]); originErr == nil {
				ident = depot.PackageIdent{Origin: args[1]}
			} else {
				return err
			}
		}

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		idents, err := c.ListViewPackages(cmd.Context(), view, ident)
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		if len(idents) == 0 {
			output.Warning("no packages in view %q match %q", view, ident)
			return nil
		}
		for _, id := range idents {
			cmd.Println(id.String())
		}
		return nil
	},
}
