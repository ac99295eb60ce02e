// Package events publishes the outcome of generation runs so other tooling
// can observe which projects were scaffolded from which templates.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Event types
const (
	TypeGenerated = "scaffold.generated"
	TypeFailed    = "scaffold.failed"
)

// Event describes one finished generation run
type Event struct {
	Type        string    `json:"type"`
	Template    string    `json:"template"`
	Destination string    `json:"destination"`
	Name        string    `json:"name"`
	Files       int       `json:"files"`
	Reused      bool      `json:"reused_saved_config"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher delivers events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event
type Nop struct{}

// Publish does nothing
func (Nop) Publish(context.Context, Event) error { return nil }

// RedisPublisher appends events to a Redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewRedisPublisher creates a publisher writing to stream
func NewRedisPublisher(client *redis.Client, stream string, logger *zap.Logger) *RedisPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPublisher{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Publish publishes an event to the stream
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("published event",
		zap.String("stream", p.stream),
		zap.String("type", event.Type),
	)
	return nil
}
