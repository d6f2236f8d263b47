package dto

import (
	"time"

	"github.com/repairdesk/repairs-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Description string  `json:"description"`
	Emergency   *bool   `json:"emergency"`
	Priority    *string `json:"priority"`
}

// UpdateTicketRequest payload. An absent, null or zero employee releases the
// ticket; the other fields change only when present.
type UpdateTicketRequest struct {
	Employee      *int64           `json:"employee"`
	DateCompleted Optional[string] `json:"date_completed"`
	Priority      *string          `json:"priority"`
	Description   *string          `json:"description"`
	Emergency     *bool            `json:"emergency"`
}

// TicketListQuery captures list filters.
type TicketListQuery struct {
	Status   string `query:"status"`
	Priority string `query:"priority"`
}

// TicketResponse is the ticket JSON shape.
type TicketResponse struct {
	ID            int64                 `json:"id"`
	Description   string                `json:"description"`
	Emergency     bool                  `json:"emergency"`
	Priority      domain.TicketPriority `json:"priority"`
	Status        domain.TicketStatus   `json:"status"`
	DateCreated   time.Time             `json:"date_created"`
	DateCompleted *string               `json:"date_completed"`
	Employee      *EmployeeResponse     `json:"employee"`
	Customer      CustomerResponse      `json:"customer"`
}

// TicketStatsResponse aggregates counts.
type TicketStatsResponse struct {
	Total        int64 `json:"total"`
	Open         int64 `json:"open"`
	InProgress   int64 `json:"in_progress"`
	Completed    int64 `json:"completed"`
	Urgent       int64 `json:"urgent"`
	HighPriority int64 `json:"high_priority"`
	Emergency    int64 `json:"emergency"`
}
