// Package main starts the flexbox server.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/frudas24/flexbox/internal/observability"
)

// main is the entrypoint for the flexbox server.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logFatal(err)
	}
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	observability.GetLogger().Error("fatal", zap.Error(err))
	observability.Sync()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
