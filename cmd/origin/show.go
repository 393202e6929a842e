package origin

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/pkg/config"
)

var showFlags struct {
	json bool
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.json, "json", false, "Output in JSON format")
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show an origin",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)
		origin, err := c.GetOrigin(cmd.Context(), name)
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		if showFlags.json {
			data, err := json.MarshalIndent(origin, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			cmd.Println(string(data))
			return nil
		}
		cmd.Printf("Origin: %s\n", origin.Name)
		if origin.Owner != "" {
			cmd.Printf("Owner: %s\n", origin.Owner)
		}
		return nil
	},
}
