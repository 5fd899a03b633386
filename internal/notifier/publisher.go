package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tourguard/tourist-safety-backend/internal/models"
)

const (
	// incidentChannel is the pub/sub channel realtime observers (the
	// websocket gateway, dashboards) subscribe to.
	incidentChannel = "incident_reported"
	// incidentQueueKey is the delivery queue drained by the webhook worker.
	incidentQueueKey = "incident_events"
)

// IncidentEvent is the payload broadcast when an incident is reported.
type IncidentEvent struct {
	Event     string           `json:"event"`
	Timestamp time.Time        `json:"timestamp"`
	Incident  *models.Incident `json:"incident"`
}

// Publisher is the outbound port the incident service fires after a
// successful write. Delivery is best-effort: a failed publish must never
// fail the write path.
type Publisher interface {
	Publish(ctx context.Context, event IncidentEvent) error
}

// RedisPublisher broadcasts incident events over Redis: a PUBLISH for
// connected realtime observers and an LPUSH onto the queue the webhook
// worker drains.
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish fans the event out to the pub/sub channel and the delivery queue.
func (p *RedisPublisher) Publish(ctx context.Context, event IncidentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal incident event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, incidentChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish incident event to Redis: %w", err)
	}

	if err := p.redisClient.LPush(ctx, incidentQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue incident event to Redis: %w", err)
	}
	return nil
}
