package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"trustpilot-collector/cmd/trustpilot-cli/commands"
	"trustpilot-collector/internal/components/telemetry"
)

func main() {
	ctx := context.Background()

	otelSetup, err := telemetry.SetupFromEnv(ctx, "trustpilot-cli")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry", "err", err.Error())
	}

	code := commands.ExecuteContext(ctx)

	err = otelSetup.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err.Error())
	}
	os.Exit(code)
}
