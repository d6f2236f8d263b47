package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()
	var created, deleted int
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error { created++; return nil })
	d.Subscribe(EventTicketDeleted, func(context.Context, Event) error { deleted++; return nil })

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventTicketCreated, 1, 2, nil)))

	assert.Equal(t, 1, created)
	assert.Zero(t, deleted)
}

func TestDispatcher_JoinsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	var reached bool
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error { return boom })
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error { reached = true; return nil })

	err := d.Publish(context.Background(), NewEvent(EventTicketAssigned, 1, 2, nil))

	assert.ErrorIs(t, err, boom)
	assert.True(t, reached)
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventTicketCompleted, 7, 3, TicketCompletedPayload{DateCompleted: "2026-01-02"})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, int64(7), event.TicketID)
	assert.Equal(t, int64(3), event.ActorUserID)
	assert.False(t, event.Timestamp.IsZero())
}
