package key

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
)

var lsCmd = &cobra.Command{
	Use:     "ls <origin>",
	Aliases: []string{"list"},
	Short:   "List the public key revisions of an origin",
	Args:    cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		origin := args[0]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		keys, err := c.ListOriginKeys(cmd.Context(), origin)
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		if len(keys) == 0 {
			output.Warning("no keys published for origin %q", origin)
			return nil
		}

		rows := [][]string{{"REVISION", "LOCATION"}}
		for _, k := range keys {
			rows = append(rows, []string{k.Revision, k.Location})
		}
		output.Table(rows)
		return nil
	},
}
