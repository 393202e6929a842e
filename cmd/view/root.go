// Package view implements the `depot view` command group.
package view

import (
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "view",
	Short: "Inspect depot views",
	Long:  "Views are curated channels of packages, such as stable and unstable.",
}

func init() {
	Cmd.AddCommand(
		lsCmd,
		pkgsCmd,
	)
}
