package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxMessageMarkSent(t *testing.T) {
	msg := &OutboxMessage{Status: OutboxStatusPending, ErrorMessage: "previous failure"}

	msg.MarkSent()

	assert.Equal(t, OutboxStatusSent, msg.Status)
	assert.Empty(t, msg.ErrorMessage)
	require.NotNil(t, msg.ProcessedAt)
}

func TestOutboxMessageMarkPublishFailure(t *testing.T) {
	msg := &OutboxMessage{Status: OutboxStatusPending}
	pubErr := errors.New("connection refused")

	for i := 0; i < 4; i++ {
		msg.MarkPublishFailure(pubErr, 5)
	}
	assert.Equal(t, OutboxStatusPending, msg.Status)
	assert.Equal(t, 4, msg.RetryCount)
	assert.Equal(t, "connection refused", msg.ErrorMessage)

	msg.MarkPublishFailure(pubErr, 5)
	assert.Equal(t, OutboxStatusFailed, msg.Status)
	assert.Equal(t, 5, msg.RetryCount)
}
