package domain

// Customer owns submitted tickets. FirstName/LastName are read from the linked user.
type Customer struct {
	ID        int64
	UserID    int64
	Address   string
	FirstName string
	LastName  string
}

// FullName returns "{first} {last}" of the linked user.
func (c Customer) FullName() string {
	return fullName(c.FirstName, c.LastName)
}
