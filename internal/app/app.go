package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter"
	"github.com/niksmo/catalog/internal/adapter/kafka"
	"github.com/niksmo/catalog/internal/adapter/restapi"
	"github.com/niksmo/catalog/internal/core/catalog"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/internal/core/service"
	"github.com/niksmo/catalog/internal/core/validation"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

// App is the catalog client: the remote API transport, the local catalog
// and the submission controller sharing it.
type App struct {
	ctx      context.Context
	cfg      config.Config
	api      restapi.Client
	producer *kafka.SubmissionsProducer
	catalog  *catalog.Store
	service  service.Service
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	const op = "app.New"

	app := &App{ctx: ctx, cfg: cfg}

	InitLogger(cfg.LogLevel)

	if err := app.initAPI(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := app.initEvents(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.initCore()

	return app, nil
}

// InitLogger installs the JSON handler on stderr as the default logger.
func InitLogger(level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initAPI() error {
	const op = "App.initAPI"

	opts := []restapi.Opt{
		restapi.BaseURLOpt(app.cfg.API.BaseURL),
		restapi.TimeoutOpt(app.cfg.API.Timeout),
	}

	files := app.cfg.API.TLS
	if files.CA != "" || files.Cert != "" {
		tlsCfg, err := adapter.MakeClientTLSConfig(files.CA, files.Cert, files.Key)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, restapi.TLSOpt(tlsCfg))
	}

	api, err := restapi.New(opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	app.api = api
	return nil
}

func (app *App) initEvents() error {
	const op = "App.initEvents"

	if !app.cfg.EventsEnabled() {
		slog.Debug("submission events are disabled", "op", op)
		return nil
	}

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Events.SchemaRegistryURLs...))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	serde, err := schema.NewSerdeSubmissionEventV1(
		app.ctx,
		schema.SubjectOpt(app.cfg.Events.Topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	producer, err := kafka.NewSubmissionsProducer(
		kafka.ProducerClientOpt(
			app.ctx, app.cfg.Events.SeedBrokers, app.cfg.Events.Topic,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	app.producer = &producer
	return nil
}

func (app *App) initCore() {
	var events port.SubmissionPublisher
	if app.producer != nil {
		events = app.producer
	}

	app.catalog = catalog.New(app.api)
	app.service = service.New(app.api, validation.New(), app.catalog, events)
}

func (app *App) Catalog() *catalog.Store {
	return app.catalog
}

func (app *App) Service() service.Service {
	return app.service
}

func (app *App) Close() {
	slog.Debug("application is closing...")

	if app.producer != nil {
		app.producer.Close()
	}

	slog.Debug("application is closed")
}
