// Package pkg implements the `depot pkg` command group.
package pkg

import (
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "pkg",
	Short: "Manage packages",
	Long: wordwrap.WrapString(
		"Upload, download and inspect package artifacts on the depot. Packages "+
			"are addressed by ident: origin/name[/version[/release]].",
		80),
}

func init() {
	Cmd.AddCommand(
		downloadCmd,
		lsCmd,
		promoteCmd,
		showCmd,
		uploadCmd,
	)
}
