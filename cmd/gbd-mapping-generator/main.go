// Package main is the entry point for gbd-mapping-generator.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"gbd-mapping-generator/internal/cmd"
	"gbd-mapping-generator/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.NewRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			if !exitErr.Printed {
				output.Error(exitErr.Error())
			}

			os.Exit(exitErr.Code)
		}

		output.Error(err.Error())
		os.Exit(cmd.ExitCodeFromError(err))
	}
}
