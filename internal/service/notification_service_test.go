package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repairdesk/repairs-service/internal/config"
	"github.com/repairdesk/repairs-service/internal/events"
)

func sampleEvent() events.Event {
	return events.Event{
		ID:          "evt-1",
		Type:        events.EventTicketCreated,
		TicketID:    7,
		ActorUserID: 3,
		Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:     events.TicketCreatedPayload{CustomerID: 2, Priority: "high", Emergency: true},
	}
}

func TestNotificationService_AppendsToStream(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cfg := config.EventsConfig{Stream: "repairs.tickets", MaxLen: 100}
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, nil, client, cfg).RegisterHandlers()

	mock.ExpectXAdd(&redis.XAddArgs{
		Stream: "repairs.tickets",
		MaxLen: 100,
		Approx: true,
		Values: []interface{}{
			"id", "evt-1",
			"type", "ticket_created",
			"ticket_id", int64(7),
			"actor_user_id", int64(3),
			"timestamp", "2026-01-02T03:04:05Z",
			"payload", `{"customer_id":2,"priority":"high","emergency":true}`,
		},
	}).SetVal("1-0")

	require.NoError(t, dispatcher.Publish(context.Background(), sampleEvent()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationService_StreamFailureIsReturnedToDispatcher(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cfg := config.EventsConfig{Stream: "repairs.tickets"}
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, nil, client, cfg).RegisterHandlers()

	mock.ExpectXAdd(streamArgs(cfg, sampleEvent(), []byte(`{"customer_id":2,"priority":"high","emergency":true}`))).
		SetErr(errors.New("connection refused"))

	assert.Error(t, dispatcher.Publish(context.Background(), sampleEvent()))
}

func TestNotificationService_WithoutRedisOnlyLogs(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, nil, nil, config.EventsConfig{Stream: "repairs.tickets"}).RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), sampleEvent()))
}
