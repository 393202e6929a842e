package key

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/config"
)

var uploadFlags struct {
	secret bool
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadFlags.secret, "secret", false, "Upload the key as a secret key")
}

var uploadCmd = &cobra.Command{
	Use:   "upload <origin> <revision> <file>",
	Short: "Upload an origin key revision",
	Long: wordwrap.WrapString(
		"Upload a key revision for an origin. Public keys are served back to "+
			"anyone; secret keys require the matching public key revision to be "+
			"uploaded first and are never served out.",
		80),
	Args: cobra.ExactArgs(3),

	RunE: func(cmd *cobra.Command, args []string) error {
		origin, revision, path := args[0], args[1], args[2]

		cfg, err := config.Load[config.Config]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening key file: %w", err)
		}
		defer f.Close()

		c := cmdutil.MustGetClient(cfg.Depot)
		if uploadFlags.secret {
			err = c.UploadOriginSecretKey(cmd.Context(), origin, revision, f)
		} else {
			err = c.UploadOriginKey(cmd.Context(), origin, revision, f)
		}
		if err != nil {
			return cmdutil.TranslateError(err)
		}

		output.Success("uploaded key %s-%s", origin, revision)
		return nil
	},
}
