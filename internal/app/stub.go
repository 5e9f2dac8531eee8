package app

import (
	"context"
	"log/slog"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter/httphandler"
	"github.com/niksmo/catalog/internal/adapter/storage"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/form"
)

// Stub serves an in-memory catalog API for local runs.
type Stub struct {
	httpServer httphandler.HTTPServer
}

func NewStub(cfg config.Config, seed []domain.Product) Stub {
	InitLogger(cfg.LogLevel)

	repo := storage.NewMemory(seed)
	handler := httphandler.NewHandler(repo)
	return Stub{
		httpServer: httphandler.NewHTTPServer(cfg.Stub.HTTPServerAddr, handler),
	}
}

// DefaultSeed is a single product built from the product form defaults.
func DefaultSeed() []domain.Product {
	return []domain.Product{form.DefaultProduct()}
}

func (s Stub) Run(stopFn context.CancelFunc) {
	go s.httpServer.Run(stopFn)

	slog.Info("stub api is running")
}

func (s Stub) Close(ctx context.Context) {
	slog.Info("stub api is closing...")

	s.httpServer.Close(ctx)

	slog.Info("stub api is closed")
}
