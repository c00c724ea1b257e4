package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, event Event) error

type Subscriber struct {
	client  *redis.Client
	channel string
	handler Handler
	logger  *zap.Logger
}

type SubscriberConfig struct {
	Channel string
	Handler Handler
	Logger  *zap.Logger
}

func NewSubscriber(client *redis.Client, config SubscriberConfig) *Subscriber {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Subscriber{
		client:  client,
		channel: config.Channel,
		handler: config.Handler,
		logger:  config.Logger,
	}
}

// Start blocks, dispatching every message on the channel to the handler
// until ctx is cancelled. Handler errors are logged and do not stop the loop.
func (s *Subscriber) Start(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Wait for the subscription confirmation so no early message is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}
	s.logger.Info("subscriber started", zap.String("channel", s.channel))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("subscriber stopping", zap.String("channel", s.channel))
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("subscription to %s closed", s.channel)
			}
			if err := s.processMessage(ctx, msg.Payload); err != nil {
				s.logger.Warn("failed to process message",
					zap.String("channel", msg.Channel), zap.Error(err))
			}
		}
	}
}

func (s *Subscriber) processMessage(ctx context.Context, payload string) error {
	event, err := Decode(payload)
	if err != nil {
		return err
	}
	return s.handler(ctx, event)
}

// Decode parses a published payload back into an Event. Data is left as the
// generic JSON value; use DecodeData to bind it to a concrete event struct.
func Decode(payload string) (Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return event, nil
}

// DecodeData re-binds an event's generic Data into out.
func DecodeData(event Event, out any) error {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s data: %w", event.Type, err)
	}
	return nil
}
