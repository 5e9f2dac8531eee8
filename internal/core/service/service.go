// Package service runs the submission pipeline shared by the product and
// review forms: guard, validate, send, interpret, update local state.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/form"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/internal/core/reporter"
	"github.com/niksmo/catalog/internal/core/validation"
)

type Service struct {
	api       port.CatalogAPI
	validator validation.SchemaValidator
	catalog   port.ProductsCollection
	events    port.SubmissionPublisher
}

// New returns the submission controller. catalog and events are optional.
func New(
	api port.CatalogAPI,
	validator validation.SchemaValidator,
	catalog port.ProductsCollection,
	events port.SubmissionPublisher,
) Service {
	return Service{
		api:       api,
		validator: validator,
		catalog:   catalog,
		events:    events,
	}
}

// A submission is one pass through the pipeline. validate may be nil for
// operations without a body.
type submission struct {
	op        domain.Operation
	status    *form.Status
	targetID  string
	validate  func() error
	send      func(context.Context) error
	onSuccess func()
}

func (s Service) CreateProduct(
	ctx context.Context, f *form.Form[domain.Product],
) error {
	var validated domain.Product
	return s.run(ctx, submission{
		op:     domain.OpCreateProduct,
		status: &f.Status,
		validate: func() (err error) {
			validated, err = s.validator.Product(
				f.Draft.Value(), f.Draft.TypeErrors()...,
			)
			return err
		},
		send: func(ctx context.Context) error {
			created, err := s.api.CreateProduct(ctx, validated)
			if err != nil {
				return err
			}
			if created.ID != "" {
				validated = created
			}
			return nil
		},
		onSuccess: func() {
			f.Draft.Reset()
			if s.catalog != nil {
				s.catalog.Add(validated)
			}
		},
	})
}

func (s Service) UpdateProduct(
	ctx context.Context, f *form.Form[domain.Product],
) error {
	id := f.ID()
	var validated domain.Product
	return s.run(ctx, submission{
		op:       domain.OpUpdateProduct,
		status:   &f.Status,
		targetID: id,
		validate: func() (err error) {
			validated, err = s.validator.Product(
				f.Draft.Value(), f.Draft.TypeErrors()...,
			)
			return err
		},
		send: func(ctx context.Context) error {
			updated, err := s.api.UpdateProduct(ctx, id, validated)
			if err != nil {
				return err
			}
			if updated.ID != "" {
				validated = updated
			}
			return nil
		},
		onSuccess: func() {
			validated.ID = id
			if s.catalog != nil {
				s.catalog.Replace(validated)
			}
		},
	})
}

func (s Service) DeleteProduct(ctx context.Context, t *form.Target) error {
	id := t.ID()
	return s.run(ctx, submission{
		op:       domain.OpDeleteProduct,
		status:   &t.Status,
		targetID: id,
		send: func(ctx context.Context) error {
			return s.api.DeleteProduct(ctx, id)
		},
		onSuccess: func() {
			t.SetID("")
			if s.catalog != nil {
				s.catalog.Remove(id)
			}
		},
	})
}

func (s Service) CreateReview(
	ctx context.Context, f *form.Form[domain.Review],
) error {
	var validated domain.Review
	return s.run(ctx, submission{
		op:     domain.OpCreateReview,
		status: &f.Status,
		validate: func() (err error) {
			validated, err = s.validator.Review(
				f.Draft.Value(), f.Draft.TypeErrors()...,
			)
			return err
		},
		send: func(ctx context.Context) error {
			_, err := s.api.CreateReview(ctx, validated)
			return err
		},
		onSuccess: f.Draft.Reset,
	})
}

func (s Service) UpdateReview(
	ctx context.Context, f *form.Form[domain.ReviewUpdate],
) error {
	id := f.ID()
	var validated domain.ReviewUpdate
	return s.run(ctx, submission{
		op:       domain.OpUpdateReview,
		status:   &f.Status,
		targetID: id,
		validate: func() (err error) {
			validated, err = s.validator.ReviewUpdate(
				f.Draft.Value(), f.Draft.TypeErrors()...,
			)
			return err
		},
		send: func(ctx context.Context) error {
			return s.api.UpdateReview(ctx, id, validated)
		},
	})
}

func (s Service) DeleteReview(ctx context.Context, t *form.Target) error {
	id := t.ID()
	return s.run(ctx, submission{
		op:       domain.OpDeleteReview,
		status:   &t.Status,
		targetID: id,
		send: func(ctx context.Context) error {
			return s.api.DeleteReview(ctx, id)
		},
		onSuccess: func() { t.SetID("") },
	})
}

// Product fetches one product for the detail view.
func (s Service) Product(
	ctx context.Context, id string, report *reporter.Slot,
) (domain.Product, error) {
	const op = "Service.Product"

	id = strings.TrimSpace(id)
	if err := domain.CheckID(domain.OpGetProduct, id); err != nil {
		report.Fail(err, domain.OpGetProduct)
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.api.FetchProduct(ctx, id)
	if err != nil {
		report.SetError(domain.OpGetProduct.FallbackMessage())
		slog.Warn("failed to fetch product", "op", op, "id", id, "err", err)
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	report.Clear()
	return p, nil
}

// Reviews fetches the reviews of the product addressed by t. On failure
// the result is nil.
func (s Service) Reviews(
	ctx context.Context, t *form.Target,
) ([]domain.Review, error) {
	const op = "Service.Reviews"
	report := t.Report()

	productID := t.ID()
	if err := domain.CheckID(domain.OpListReviews, productID); err != nil {
		report.Fail(err, domain.OpListReviews)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reviews, err := s.api.FetchReviews(ctx, productID)
	if err != nil {
		report.Fail(err, domain.OpListReviews)
		slog.Warn("failed to fetch reviews",
			"op", op, "productID", productID, "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	report.Clear()
	return reviews, nil
}

func (s Service) run(ctx context.Context, sub submission) error {
	const op = "Service.run"
	log := slog.With("op", op, "operation", sub.op.String())
	report := sub.status.Report()

	if !sub.status.Begin() {
		err := domain.NewInProgressError(sub.op)
		report.Fail(err, sub.op)
		log.Warn("rejected re-entrant submission")
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.pipeline(ctx, sub)
	if err != nil {
		sub.status.Finish(form.Failed)
		msg := report.Fail(err, sub.op)
		log.Warn("submission failed", "targetID", sub.targetID, "err", err)
		s.publish(ctx, sub, false, msg)
		return fmt.Errorf("%s: %w", op, err)
	}

	if sub.onSuccess != nil {
		sub.onSuccess()
	}
	sub.status.Finish(form.Succeeded)
	msg := sub.op.SuccessMessage()
	report.SetSuccess(msg)
	log.Info("submission succeeded", "targetID", sub.targetID)
	s.publish(ctx, sub, true, msg)
	return nil
}

func (s Service) pipeline(ctx context.Context, sub submission) error {
	if sub.op.RequiresID() {
		if err := domain.CheckID(sub.op, sub.targetID); err != nil {
			return err
		}
	}

	if sub.validate != nil {
		if err := sub.validate(); err != nil {
			return err
		}
	}

	sub.status.Advance(form.Sending)
	return sub.send(ctx)
}

func (s Service) publish(
	ctx context.Context, sub submission, succeeded bool, msg string,
) {
	const op = "Service.publish"

	if s.events == nil {
		return
	}

	evt := domain.SubmissionEvent{
		ID:         uuid.NewString(),
		Op:         sub.op,
		TargetID:   sub.targetID,
		Succeeded:  succeeded,
		Message:    msg,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishSubmission(ctx, evt); err != nil {
		slog.Error("failed to publish submission event", "op", op, "err", err)
	}
}
