package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The lifecycle-event topic lives on the writer. A message that names a
// topic too is rejected by kafka-go before any network I/O, which would
// turn every publish into a no-op.
func TestKafkaService_TopicOnWriterOnly(t *testing.T) {
	// Arrange
	ks := NewKafkaService("localhost:9092", "test-group", "event.volunteering.activity.completed", "event.certificate")
	defer ks.Close()

	// Act
	msg := ks.buildMessage("event.certificate.issued", []byte(`{"schemaVersion":"1.0"}`))

	// Assert
	assert.Empty(t, msg.Topic)
	assert.Equal(t, "event.certificate", ks.writer.Topic)
	assert.Equal(t, []byte("event.certificate.issued"), msg.Key)
}

func TestKafkaService_BuildMessageHeaders(t *testing.T) {
	// Arrange
	ks := NewKafkaService("localhost:9092", "test-group", "event.volunteering.activity.completed", "event.certificate")
	defer ks.Close()

	payload, err := json.Marshal(map[string]string{"certificateId": "CERT-JANEDOE-CLEANUP-1"})
	require.NoError(t, err)

	// Act
	msg := ks.buildMessage("event.certificate.rejected", payload)

	// Assert
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, []byte("event.certificate.rejected"), msg.Headers[0].Value)
	assert.Equal(t, "timestamp", msg.Headers[1].Key)
	assert.JSONEq(t, string(payload), string(msg.Value))
}
