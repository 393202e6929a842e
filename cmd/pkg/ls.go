package pkg

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/depot"
)

var lsCmd = &cobra.Command{
	Use:     "ls <ident>",
	Aliases: []string{"list"},
	Short:   "List packages matching an ident",
	Long:    "List published packages matching an ident. The ident may be as short as an origin name.",
	Args:    cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		ident, err := parseListIdent(args[0])
		if err != nil {
			return err
		}

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		idents, err := c.ListPackages(cmd.Context(), ident)
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		if len(idents) == 0 {
			output.Warning("no packages match %q", ident)
			return nil
		}
		for _, id := range idents {
			cmd.Println(id.String())
		}
		return nil
	},
}

// parseListIdent accepts a bare origin in addition to the usual ident forms.
func parseListIdent(s string) (depot.PackageIdent, error) {
	if err := depot.ValidOriginName(s); err == nil {
		return depot.PackageIdent{Origin: s}, nil
	}
	return depot.ParseIdent(s)
}
