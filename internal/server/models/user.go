package models

import "time"

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
	UserBlocked   UserStatus = "BLOCKED"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserSuspended, UserBlocked:
		return true
	}
	return false
}

type User struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Email          string     `db:"email" json:"email"`
	Status         UserStatus `db:"status" json:"status"`
	MembershipDate time.Time  `db:"membership_date" json:"membershipDate"`
}
