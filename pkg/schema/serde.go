// Package schema holds the avro schemas of the events the catalog client
// publishes and the schema-registry serde that frames them.
package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var (
	ErrNoSubject          = errors.New("registry subject is not set")
	ErrNoSchemaIdentifier = errors.New("registry schema identifier is not set")
)

// A Serde frames avro payloads with the registry wire header: a magic byte
// followed by the schema ID.
type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

type avroSerde struct {
	framer *sr.Serde
}

func (s avroSerde) Encode(v any) ([]byte, error) {
	return s.framer.Encode(v)
}

func (s avroSerde) Decode(data []byte, v any) error {
	return s.framer.Decode(data, v)
}

type Opt func(*serdeOpts)

type serdeOpts struct {
	subject string
	ids     SchemaIdentifier
}

// SubjectOpt names the registry subject the event schema lives under. The
// client uses the record-value subject of the submissions topic.
func SubjectOpt(subject string) Opt {
	return func(o *serdeOpts) {
		o.subject = subject
	}
}

// SchemaIdentifierOpt sets how the schema ID is obtained, usually
// [NewSchemaCreater] over the registry client of the events config.
func SchemaIdentifierOpt(ids SchemaIdentifier) Opt {
	return func(o *serdeOpts) {
		o.ids = ids
	}
}

func (o serdeOpts) check() error {
	switch {
	case o.subject == "":
		return ErrNoSubject
	case o.ids == nil:
		return ErrNoSchemaIdentifier
	}
	return nil
}

// NewSerdeSubmissionEventV1 resolves the ID of [SubmissionEventSchemaTextV1]
// and returns a serde for [SubmissionEventV1] values. Both options are
// required.
func NewSerdeSubmissionEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	const op = "NewSerdeSubmissionEventV1"

	var o serdeOpts
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	eventSchema, err := avro.Parse(SubmissionEventSchemaTextV1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := o.ids.DetermineID(ctx, o.subject, SubmissionEventSchemaTextV1)
	if err != nil {
		return nil, fmt.Errorf("%s: registry subject %q: %w", op, o.subject, err)
	}

	s := avroSerde{framer: new(sr.Serde)}
	s.framer.Register(id, SubmissionEventV1{},
		sr.EncodeFn(func(v any) ([]byte, error) {
			return avro.Marshal(eventSchema, v)
		}),
		sr.DecodeFn(func(data []byte, v any) error {
			return avro.Unmarshal(eventSchema, data, v)
		}),
	)
	return s, nil
}
