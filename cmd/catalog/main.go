package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/niksmo/catalog/internal/cli"
	"github.com/niksmo/catalog/pkg/sigctx"
)

func main() {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	err := cli.NewRootCmd().ExecuteContext(sigCtx)
	if err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
