package domain

// Employee is a staff member that can be assigned to tickets.
type Employee struct {
	ID        int64
	UserID    int64
	Specialty string
	FirstName string
	LastName  string
}

// FullName returns "{first} {last}" of the linked user.
func (e Employee) FullName() string {
	return fullName(e.FirstName, e.LastName)
}
