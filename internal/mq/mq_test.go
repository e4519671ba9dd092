package mq

import (
	"context"
	"errors"
	"testing"
)

type scorePayload struct {
	TraceID string  `json:"traceId"`
	Value   float64 `json:"value"`
}

func TestNewMessage_ParsePayload(t *testing.T) {
	msg, err := NewMessage(MessageTypeScoreCreated, scorePayload{TraceID: "trace-1", Value: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ID == "" {
		t.Error("message id should be generated")
	}
	if msg.Type != MessageTypeScoreCreated {
		t.Errorf("expected score.created, got %s", msg.Type)
	}

	got, err := ParsePayload[scorePayload](msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TraceID != "trace-1" || got.Value != 0.5 {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestParsePayload_Invalid(t *testing.T) {
	msg := &Message{Payload: []byte(`"not an object"`)}
	if _, err := ParsePayload[scorePayload](msg); err == nil {
		t.Error("expected error for mismatched payload")
	}
}

func TestConsumer_Handle(t *testing.T) {
	handlerErr := errors.New("boom")
	var calls int

	c := NewConsumer(nil, nil, ConsumerConfig{
		Queue: QueueScoresRelay,
		Handler: func(_ context.Context, msg *Message) error {
			calls++
			if msg.ID == "bad" {
				return handlerErr
			}
			return nil
		},
	})

	if c.prefetch != 1 {
		t.Errorf("expected default prefetch 1, got %d", c.prefetch)
	}

	if err := c.Handle(context.Background(), &Message{ID: "ok"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.Handle(context.Background(), &Message{ID: "bad"}); !errors.Is(err, handlerErr) {
		t.Errorf("expected handler error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}
