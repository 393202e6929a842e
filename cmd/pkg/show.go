package pkg

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/depot"
)

var showFlags struct {
	json bool
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.json, "json", false, "Output in JSON format")
}

var showCmd = &cobra.Command{
	Use:   "show <ident>",
	Short: "Show a package",
	Long:  "Show a package's depot record. A partial ident resolves to the latest matching release.",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		ident, err := depot.ParseIdent(args[0])
		if err != nil {
			return err
		}

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		p, err := c.ShowPackage(cmd.Context(), ident)
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		if showFlags.json {
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			cmd.Println(string(data))
			return nil
		}

		cmd.Printf("Ident: %s\n", p.Ident)
		cmd.Printf("Checksum: %s\n", p.Checksum)
		for _, dep := range p.Deps {
			cmd.Printf("Dep: %s\n", dep)
		}
		for _, port := range p.Exposes {
			cmd.Printf("Exposes: %d\n", port)
		}
		return nil
	},
}
