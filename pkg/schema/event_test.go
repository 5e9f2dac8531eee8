package schema

import (
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionEventV1(t *testing.T) {
	vMarshal := SubmissionEventV1{
		EventID:    "testEventID",
		Operation:  "create-product",
		TargetID:   "",
		Succeeded:  true,
		Message:    "Product created successfully!",
		OccurredAt: time.Date(2024, 12, 2, 12, 0, 0, 0, time.UTC),
	}

	var eventSchema avro.Schema

	require.NotPanics(t, func() {
		eventSchema = SubmissionEventV1Avro()
	})

	data, err := avro.Marshal(eventSchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal SubmissionEventV1
	err = avro.Unmarshal(eventSchema, data, &vUnmarshal)
	require.NoError(t, err)

	assert.Equal(t, vMarshal.EventID, vUnmarshal.EventID)
	assert.Equal(t, vMarshal.Operation, vUnmarshal.Operation)
	assert.Empty(t, vUnmarshal.TargetID)
	assert.True(t, vUnmarshal.Succeeded)
	assert.Equal(t, vMarshal.Message, vUnmarshal.Message)
	assert.True(t, vMarshal.OccurredAt.Equal(vUnmarshal.OccurredAt))
}
