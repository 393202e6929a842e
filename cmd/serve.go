package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/pkg/depotserver"
)

var serveFlags struct {
	addr string
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":9636", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory depot server",
	Long: wordwrap.WrapString(
		"Run a local, in-memory depot server. State is not persisted; this is "+
			"intended for development and testing against the depot API.",
		80),

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := depotserver.New()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start(serveFlags.addr)
		}()
		output.Success("depot listening on %s", serveFlags.addr)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("depot server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	},
}
