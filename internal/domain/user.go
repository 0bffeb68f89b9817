package domain

import (
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTutor   UserRole = "tutor"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleStudent || r == UserRoleTutor || r == UserRoleAdmin
}

// Actor is the authenticated identity on whose behalf an operation runs.
type Actor struct {
	UserID int64
	Role   UserRole
}

func (a Actor) IsStudent() bool { return a.Role == UserRoleStudent }

func (a Actor) IsTutor() bool { return a.Role == UserRoleTutor }

func (a Actor) IsAdmin() bool { return a.Role == UserRoleAdmin }
