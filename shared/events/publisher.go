package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher sends events to Redis pub/sub. Nothing is retained by Redis:
// a notification with no subscriber is dropped.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, channel, eventType string, data any) error {
	payload, err := encode(eventType, data, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// NopPublisher discards every event. Used when no Redis is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

func encode(eventType string, data any, ts time.Time) ([]byte, error) {
	event := Event{
		Type:      eventType,
		Timestamp: ts,
		Data:      data,
	}
	b, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return b, nil
}
