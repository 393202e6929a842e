package pkg

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/depot"
	"github.com/packhaus/depot/pkg/repo"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <ident> <file>",
	Short: "Upload a package artifact",
	Long: wordwrap.WrapString(
		"Upload a package artifact under a fully qualified ident "+
			"(origin/name/version/release). The artifact is checksummed locally "+
			"and the depot verifies the checksum on receipt. Successful uploads "+
			"are recorded in the local history.",
		80),
	Args: cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		ident, err := depot.ParseIdent(args[0])
		if err != nil {
			return err
		}
		path := args[1]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening artifact: %w", err)
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stating artifact: %w", err)
		}

		checksum, err := depot.Checksum(f)
		if err != nil {
			return err
		}
		if _, err := f.Seek(0, 0); err != nil {
			return fmt.Errorf("rewinding artifact: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = fmt.Sprintf(" uploading %s (%s)", ident, humanize.Bytes(uint64(stat.Size())))
		s.Start()
		location, err := c.UploadPackage(cmd.Context(), ident, f, checksum)
		s.Stop()
		if err != nil {
			return cmdutil.TranslateError(err)
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

		if _, err := hist.Record(cmd.Context(), ident, checksum, location); err != nil {
			output.Warning("upload succeeded but recording history failed: %s", err)
		}

		output.Success("uploaded %s to %s", ident, location)
		return nil
	},
}
