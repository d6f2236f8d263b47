package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/repairdesk/repairs-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketAssigned  EventType = "ticket_assigned"
	EventTicketCompleted EventType = "ticket_completed"
	EventTicketDeleted   EventType = "ticket_deleted"
)

// AllTicketEvents lists every ticket event type.
var AllTicketEvents = []EventType{
	EventTicketCreated,
	EventTicketAssigned,
	EventTicketCompleted,
	EventTicketDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	TicketID    int64       `json:"ticket_id"`
	ActorUserID int64       `json:"actor_user_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, ticketID, actorUserID int64, payload interface{}) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		TicketID:    ticketID,
		ActorUserID: actorUserID,
		Timestamp:   time.Now().UTC(),
		Payload:     payload,
	}
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CustomerID int64                 `json:"customer_id"`
	Priority   domain.TicketPriority `json:"priority"`
	Emergency  bool                  `json:"emergency"`
}

// TicketAssignedPayload payload. A nil employee means the ticket was released.
type TicketAssignedPayload struct {
	PreviousEmployeeID *int64 `json:"previous_employee_id,omitempty"`
	EmployeeID         *int64 `json:"employee_id,omitempty"`
}

// TicketCompletedPayload payload.
type TicketCompletedPayload struct {
	DateCompleted string `json:"date_completed"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	CustomerID int64 `json:"customer_id"`
}
