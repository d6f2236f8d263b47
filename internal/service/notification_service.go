package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/repairdesk/repairs-service/internal/config"
	"github.com/repairdesk/repairs-service/internal/events"
)

// NotificationService logs ticket events and appends them to a Redis stream
// for downstream consumers.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *redis.Client
	cfg        config.EventsConfig
}

// NewNotificationService creates the service. A nil Redis client disables
// stream publishing.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, client *redis.Client, cfg config.EventsConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      client,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllTicketEvents {
		n.dispatcher.Subscribe(eventType, n.handleTicketEvent)
	}
}

func (n *NotificationService) handleTicketEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("ticket event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("ticket_id", event.TicketID),
		zap.Int64("actor_user_id", event.ActorUserID),
		zap.Any("payload", event.Payload))
	return n.appendToStream(ctx, event)
}

func (n *NotificationService) appendToStream(ctx context.Context, event events.Event) error {
	if n.redis == nil || n.cfg.Stream == "" {
		return nil
	}
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	err = n.redis.XAdd(ctx, streamArgs(n.cfg, event, payload)).Err()
	if err != nil {
		n.logger.Warn("append ticket event to stream",
			zap.String("stream", n.cfg.Stream),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
	return err
}

func streamArgs(cfg config.EventsConfig, event events.Event, payload []byte) *redis.XAddArgs {
	return &redis.XAddArgs{
		Stream: cfg.Stream,
		MaxLen: cfg.MaxLen,
		Approx: cfg.MaxLen > 0,
		Values: []interface{}{
			"id", event.ID,
			"type", string(event.Type),
			"ticket_id", event.TicketID,
			"actor_user_id", event.ActorUserID,
			"timestamp", event.Timestamp.UTC().Format(time.RFC3339Nano),
			"payload", string(payload),
		},
	}
}
