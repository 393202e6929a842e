package key

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/bus/events"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/repo"
)

var downloadCmd = &cobra.Command{
	Use:   "download <origin> [revision]",
	Short: "Download an origin public key into the local cache",
	Args:  cobra.RangeArgs(1, 2),

	RunE: func(cmd *cobra.Command, args []string) error {
		origin := args[0]
		revision := ""
		if len(args) > 1 {
			revision = args[1]
		}

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		r, err := repo.Open(cfg.Repo)
		if err != nil {
			return fmt.Errorf("opening repo: %w", err)
		}
		cache, err := r.KeyCache()
		if err != nil {
			return fmt.Errorf("opening key cache: %w", err)
		}

		c := cmdutil.MustGetClient(cfg.Depot)

		var buf bytes.Buffer
		var filename string
		if revision == "" {
			filename, err = c.DownloadLatestOriginKey(cmd.Context(), origin, &buf)
		} else {
			filename, err = c.DownloadOriginKey(cmd.Context(), origin, revision, &buf)
		}
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		// the depot names key files origin-revision.pub; recover the
		// revision when we asked for latest
		if revision == "" {
			revision = revisionFromFileName(filename, origin)
			if revision == "" {
				return fmt.Errorf("depot returned unrecognized key file name %q", filename)
			}
		}

		path, err := cache.Put(origin, revision, buf.Bytes())
		if err != nil {
			return err
		}
		r.Bus().Publish(events.TopicKey(origin), events.KeyCached{
			Origin:   origin,
			Revision: revision,
			Path:     path,
		})

		output.Success("cached key %s-%s at %s", origin, revision, path)
		return nil
	},
}

func revisionFromFileName(filename, origin string) string {
	name := strings.TrimSuffix(filename, ".pub")
	if !strings.HasPrefix(name, origin+"-") {
		return ""
	}
	return strings.TrimPrefix(name, origin+"-")
}
