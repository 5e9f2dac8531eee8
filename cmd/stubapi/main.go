package main

import (
	"context"
	"time"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/app"
	"github.com/niksmo/catalog/pkg/sigctx"
)

const shutdownTimeout = 5 * time.Second

func main() {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	cfg := config.Load()
	cfg.Print()

	stub := app.NewStub(cfg, app.DefaultSeed())
	stub.Run(stop)

	<-sigCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	stub.Close(ctx)
}
