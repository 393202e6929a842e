package pkg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/ctxutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/depot"
)

var downloadFlags struct {
	dest        string
	concurrency int
}

func init() {
	downloadCmd.Flags().StringVar(&downloadFlags.dest, "dest", ".", "Directory to write artifacts to")
	downloadCmd.Flags().IntVar(&downloadFlags.concurrency, "concurrency", 4, "Number of artifacts to download at once")
}

var downloadCmd = &cobra.Command{
	Use:   "download <ident>...",
	Short: "Download package artifacts",
	Long: wordwrap.WrapString(
		"Download one or more package artifacts. Each ident must be fully "+
			"qualified (origin/name/version/release). Multiple artifacts are "+
			"fetched concurrently.",
		80),
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		idents := make([]depot.PackageIdent, 0, len(args))
		for _, arg := range args {
			ident, err := depot.ParseIdent(arg)
			if err != nil {
				return err
			}
			if !ident.FullyQualified() {
				return fmt.Errorf("ident %q is not fully qualified", ident)
			}
			idents = append(idents, ident)
		}

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if err := os.MkdirAll(downloadFlags.dest, 0755); err != nil {
			return fmt.Errorf("creating dest dir: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)

		eg, ctx := errgroup.WithContext(cmd.Context())
		eg.SetLimit(downloadFlags.concurrency)
		for _, ident := range idents {
			eg.Go(func() error {
				tmp, err := os.CreateTemp(downloadFlags.dest, ".download-*")
				if err != nil {
					return fmt.Errorf("creating temp file: %w", err)
				}
				defer os.Remove(tmp.Name())
				defer tmp.Close()

				filename, err := c.DownloadPackage(ctx, ident, tmp)
				if err != nil {
					return cmdutil.TranslateError(ctxutil.ErrorWithCause(err, ctx))
				}
				if err := tmp.Close(); err != nil {
					return fmt.Errorf("closing artifact %q: %w", filename, err)
				}

				dest := filepath.Join(downloadFlags.dest, filename)
				if err := os.Rename(tmp.Name(), dest); err != nil {
					return fmt.Errorf("moving artifact into place: %w", err)
				}
				output.Success("downloaded %s to %s", ident, dest)
				return nil
			})
		}
		return eg.Wait()
	},
}
