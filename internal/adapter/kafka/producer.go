package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/pkg/retry"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.SubmissionPublisher = (*SubmissionsProducer)(nil)

const produceAttempts = 3

// A SubmissionsProducer publishes [domain.SubmissionEvent] keyed by
// operation name.
type SubmissionsProducer struct {
	cl       ProducerClient
	encoder  Encoder
	retryCfg retry.RetryConfig
	opPrefix string
}

func NewSubmissionsProducer(
	opts ...ProducerOpt,
) (SubmissionsProducer, error) {
	const op = "NewSubmissionsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return SubmissionsProducer{}, opErr(err, op)
		}
	}

	return SubmissionsProducer{
		cl:      options.cl,
		encoder: options.encoder,
		retryCfg: retry.RetryConfig{
			MaxAttempts: produceAttempts,
			Backoff:     retry.ExponentialBackoff(50 * time.Millisecond),
			ShouldRetry: isRetriable,
		},
		opPrefix: "SubmissionsProducer",
	}, nil
}

func isRetriable(err error) bool {
	return kerr.IsRetriable(err)
}

func (p SubmissionsProducer) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p SubmissionsProducer) PublishSubmission(
	ctx context.Context, evt domain.SubmissionEvent,
) error {
	const op = "PublishSubmission"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	err = retry.Do(ctx, p.retryCfg, func() error {
		return p.cl.ProduceSync(ctx, r).FirstErr()
	})
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p SubmissionsProducer) createRecord(
	evt domain.SubmissionEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := submissionEventToSchemaV1(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.Operation), Value: b}, nil
}
