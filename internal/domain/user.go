package domain

import (
	"strings"
	"time"
)

// User is the identity record behind every customer and employee account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsStaff      bool
	DateJoined   time.Time
}

// FullName joins first and last name the way every profile view renders it.
func (u User) FullName() string {
	return fullName(u.FirstName, u.LastName)
}

func fullName(first, last string) string {
	return strings.Join([]string{first, last}, " ")
}
