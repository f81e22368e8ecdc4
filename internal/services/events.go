package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/models"
)

// EventWriter defines a Kafka writer abstraction.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the writer
}

// publishEvent publishes an activity event. Fire-and-forget: failures
// are logged and never surfaced to the caller.
func publishEvent(ctx context.Context, w EventWriter, event models.Event) {
	if w == nil {
		return
	}

	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().Unix()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish event", "type", event.Type, "error", err)
		return
	}

	logger.Log.Infow("event published", "type", event.Type, "event_id", event.EventID)
}
