package domain

import "time"

// TicketStatus is derived from assignment and completion; it is never stored.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusCompleted  TicketStatus = "completed"
)

// TicketPriority enumerates repair urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// MaxDescriptionLength bounds ticket descriptions.
const MaxDescriptionLength = 500

// DateLayout is the wire format of completion dates.
const DateLayout = "2006-01-02"

// Valid reports whether p is one of the four known priorities.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// StatusFilter is the list query vocabulary for narrowing by derived status.
type StatusFilter string

const (
	StatusFilterDone       StatusFilter = "done"
	StatusFilterUnclaimed  StatusFilter = "unclaimed"
	StatusFilterInProgress StatusFilter = "in-progress"
)

// Valid reports whether f is a supported list filter.
func (f StatusFilter) Valid() bool {
	switch f {
	case StatusFilterDone, StatusFilterUnclaimed, StatusFilterInProgress:
		return true
	}
	return false
}

// Matches applies the filter predicate to a ticket.
func (f StatusFilter) Matches(t *Ticket) bool {
	switch f {
	case StatusFilterDone:
		return t.DateCompleted != nil
	case StatusFilterUnclaimed:
		return t.DateCompleted == nil && t.Employee == nil
	case StatusFilterInProgress:
		return t.DateCompleted == nil && t.Employee != nil
	}
	return false
}

// Ticket is a repair request submitted by a customer.
type Ticket struct {
	ID            int64
	Customer      Customer
	Employee      *Employee
	Description   string
	Emergency     bool
	Priority      TicketPriority
	DateCreated   time.Time
	DateCompleted *time.Time
}

// Status derives the lifecycle state from completion date and assignment.
func (t *Ticket) Status() TicketStatus {
	switch {
	case t.DateCompleted != nil:
		return TicketStatusCompleted
	case t.Employee != nil:
		return TicketStatusInProgress
	default:
		return TicketStatusOpen
	}
}

// TicketStats aggregates counts over one scoped snapshot.
type TicketStats struct {
	Total        int64
	Open         int64
	InProgress   int64
	Completed    int64
	Urgent       int64
	HighPriority int64
	Emergency    int64
}
