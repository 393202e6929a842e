package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/history"
	"github.com/packhaus/depot/pkg/repo"
)

var historyFlags struct {
	origin string
	limit  int
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.origin, "origin", "", "Only show uploads under this origin")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "Maximum number of uploads to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally recorded uploads",

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		r, err := repo.Open(cfg.Repo)
		if err != nil {
			return fmt.Errorf("opening repo: %w", err)
		}
		hist, err := r.History()
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer hist.Close()

		var uploads []history.Upload
		if historyFlags.origin != "" {
			uploads, err = hist.ForOrigin(cmd.Context(), historyFlags.origin)
		} else {
			uploads, err = hist.List(cmd.Context(), historyFlags.limit)
		}
		if err != nil {
			return err
		}

		if len(uploads) == 0 {
			output.Warning("no uploads recorded")
			return nil
		}

		rows := [][]string{{"IDENT", "UPLOADED", "CHECKSUM"}}
		for _, up := range uploads {
			checksum := up.Checksum
			if len(checksum) > 12 {
				checksum = checksum[:12]
			}
			rows = append(rows, []string{up.Ident, humanize.Time(up.CreatedAt), checksum})
		}
		output.Table(rows)
		return nil
	},
}
