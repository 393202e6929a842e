// Package key implements the `depot key` command group.
package key

import (
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "key",
	Short: "Manage origin signing keys",
	Long: wordwrap.WrapString(
		"Upload and fetch origin signing keys. Public keys downloaded from the "+
			"depot are kept in a local cache so artifacts can be verified offline.",
		80),
}

func init() {
	Cmd.AddCommand(
		downloadCmd,
		lsCmd,
		uploadCmd,
	)
}
