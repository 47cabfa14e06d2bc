package domain

import "time"

// UserRole enumerates agency staff roles.
type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleManager   UserRole = "GERENTE"
	UserRoleExecutive UserRole = "EJECUTIVO"
)

// UserStatus represents account states for an agency user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is an agency staff member operating the CRM.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
