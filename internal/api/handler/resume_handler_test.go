package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-insight-go/internal/config"
	"resume-insight-go/internal/storage"
	"resume-insight-go/internal/storage/models"
	"resume-insight-go/internal/types"
)

func TestCalculateMD5(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", calculateMD5(nil))
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", calculateMD5([]byte("hello")))
}

func TestBuildParsedEvent(t *testing.T) {
	cfg := config.DefaultConfig()
	h := NewResumeHandler(cfg, nil, nil)

	parsedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := &models.ResumeRecord{
		SubmissionUUID: "0197a1b2-0000-7000-8000-000000000001",
		ResultFilePath: "resume/0197a1b2-0000-7000-8000-000000000001/result.json",
	}
	result := &types.ParseResult{
		Scores:   types.Scores{Overall: 72.5},
		ParsedAt: parsedAt,
	}

	event, err := h.buildParsedEvent(record, result)
	require.NoError(t, err)

	assert.Equal(t, record.SubmissionUUID, event.AggregateID)
	assert.Equal(t, storage.EventTypeResumeParsed, event.EventType)
	assert.Equal(t, cfg.RabbitMQ.ResumeEventsExchange, event.TargetExchange)
	assert.Equal(t, cfg.RabbitMQ.ParsedRoutingKey, event.TargetRoutingKey)

	var payload storage.ResumeParsedEvent
	require.NoError(t, json.Unmarshal([]byte(event.Payload), &payload))
	assert.Equal(t, record.SubmissionUUID, payload.SubmissionUUID)
	assert.Equal(t, record.ResultFilePath, payload.ResultFilePath)
	assert.InDelta(t, 72.5, payload.OverallScore, 0.001)
	assert.True(t, payload.ParsedAt.Equal(parsedAt))
}
