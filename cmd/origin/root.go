// Package origin implements the `depot origin` command group.
package origin

import (
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "origin",
	Short: "Manage origins",
	Long: wordwrap.WrapString(
		"Create and manage origins on the depot. An origin is the namespace "+
			"packages and signing keys are published under.",
		80),
}

func init() {
	Cmd.AddCommand(
		availableCmd,
		createCmd,
		deleteCmd,
		memberAddCmd,
		memberRmCmd,
		showCmd,
	)
}
