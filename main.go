package main

import (
	"context"
	"errors"
	"os"

	"github.com/packhaus/depot/cmd"
	"github.com/packhaus/depot/internal/cmdutil"
	"github.com/packhaus/depot/internal/output"
	"github.com/packhaus/depot/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Set up OpenTelemetry. Tracing is off unless an endpoint is configured.
	otelShutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:  os.Getenv("DEPOT_TRACES_ENDPOINT") != "",
		Endpoint: os.Getenv("DEPOT_TRACES_ENDPOINT"),
		Insecure: os.Getenv("DEPOT_TRACES_INSECURE") != "",
	})
	if err != nil {
		output.Error(err)
		os.Exit(1)
	}

	err = cmd.ExecuteContext(ctx)

	if shutdownErr := otelShutdown(context.Background()); shutdownErr != nil {
		output.Warning("shutting down telemetry: %s", shutdownErr)
	}

	if err != nil {
		var handled cmdutil.HandledCliError
		if !errors.As(err, &handled) {
			output.Error(err)
		}
		os.Exit(1)
	}
}
