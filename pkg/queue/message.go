package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Message is the envelope pushed onto a queue list.
type Message struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

func newMessage(msgType string, payload interface{}, now time.Time) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal payload: %w", err)
	}
	return Message{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Type:      msgType,
		Payload:   raw,
		Timestamp: now,
	}, nil
}

// ParsePayload decodes a message payload into T.
func ParsePayload[T any](m Message) (*T, error) {
	var out T
	if err := json.Unmarshal(m.Payload, &out); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &out, nil
}
