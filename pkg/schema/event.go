package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const SubmissionEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "submission_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "operation", "type": "string"},
		{"name": "target_id", "type": "string"},
		{"name": "succeeded", "type": "boolean"},
		{"name": "message", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type SubmissionEventV1 struct {
	EventID    string    `avro:"event_id"`
	Operation  string    `avro:"operation"`
	TargetID   string    `avro:"target_id"`
	Succeeded  bool      `avro:"succeeded"`
	Message    string    `avro:"message"`
	OccurredAt time.Time `avro:"occurred_at"`
}

// SubmissionEventV1Avro panics when the schema text is invalid.
func SubmissionEventV1Avro() avro.Schema {
	return avro.MustParse(SubmissionEventSchemaTextV1)
}
