package broker

import (
	"encoding/json"
	"time"

	"anima/models"

	"github.com/google/uuid"
)

// NewEvent stamps an event with a fresh ID and timestamp.
func NewEvent(eventType, userID string, now time.Time) models.ProgressionEvent {
	return models.ProgressionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: now,
	}
}

// MarshalEvent encodes an event for the "data" field of a stream entry.
func MarshalEvent(event models.ProgressionEvent) (string, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func UnmarshalEvent(data string) (models.ProgressionEvent, error) {
	var event models.ProgressionEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return models.ProgressionEvent{}, err
	}
	return event, nil
}
