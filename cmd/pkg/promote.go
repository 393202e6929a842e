package pkg

import (
	"fmt"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/depot"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <view> <ident>",
	Short: "Promote a package into a view",
	Long: wordwrap.WrapString(
		"Associate a published package with a view, e.g. promote a release to "+
			"stable. The ident must be fully qualified and the package must "+
			"already be on the depot.",
		80),
	Args: cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		view := args[0]
		ident, err := depot.ParseIdent(args[1])
		if err != nil {
			return err
		}

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		if err := c.PromotePackage(cmd.Context(), view, ident); err != nil {
			return cmdutil.TranslateError(err)
		}

		output.Success("promoted %s to %s", ident, view)
		return nil
	},
}
