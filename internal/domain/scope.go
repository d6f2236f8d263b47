package domain

// TicketScope is the set of tickets a caller may see. Staff see everything;
// everyone else sees the tickets of one customer profile, or nothing when
// they have none.
type TicketScope struct {
	All        bool
	CustomerID int64
}

// Empty reports whether the scope admits no tickets at all.
func (s TicketScope) Empty() bool {
	return !s.All && s.CustomerID == 0
}

// Admits reports whether the ticket falls inside the scope.
func (s TicketScope) Admits(t *Ticket) bool {
	if s.All {
		return true
	}
	return s.CustomerID != 0 && t.Customer.ID == s.CustomerID
}
