package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicketStatus(t *testing.T) {
	done := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	bob := &Employee{ID: 7}

	tests := []struct {
		name   string
		ticket Ticket
		want   TicketStatus
	}{
		{name: "unassigned", ticket: Ticket{}, want: TicketStatusOpen},
		{name: "assigned", ticket: Ticket{Employee: bob}, want: TicketStatusInProgress},
		{name: "completed without employee", ticket: Ticket{DateCompleted: &done}, want: TicketStatusCompleted},
		{name: "completed with employee", ticket: Ticket{Employee: bob, DateCompleted: &done}, want: TicketStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ticket.Status())
		})
	}
}

func TestStatusFilterMatchesDerivedStatus(t *testing.T) {
	done := time.Now()
	bob := &Employee{ID: 7}
	tickets := []Ticket{{}, {Employee: bob}, {DateCompleted: &done}, {Employee: bob, DateCompleted: &done}}

	want := map[StatusFilter]TicketStatus{
		StatusFilterDone:       TicketStatusCompleted,
		StatusFilterUnclaimed:  TicketStatusOpen,
		StatusFilterInProgress: TicketStatusInProgress,
	}
	for filter, status := range want {
		for i := range tickets {
			assert.Equal(t, tickets[i].Status() == status, filter.Matches(&tickets[i]), "%s on ticket %d", filter, i)
		}
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []TicketPriority{"low", "medium", "high", "urgent"} {
		assert.True(t, p.Valid(), p)
	}
	for _, p := range []TicketPriority{"", "LOW", "critical"} {
		assert.False(t, p.Valid(), p)
	}
	assert.False(t, StatusFilter("in_progress").Valid())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Alice Smith", Customer{FirstName: "Alice", LastName: "Smith"}.FullName())
	assert.Equal(t, "Bob Jones", Employee{FirstName: "Bob", LastName: "Jones"}.FullName())
	assert.Equal(t, "Bob Jones", User{FirstName: "Bob", LastName: "Jones"}.FullName())
}
