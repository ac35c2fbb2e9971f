package model

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser can view and edit their own record
	RoleUser UserRole = "User"
	// RoleEditor can view and edit records
	RoleEditor UserRole = "Editor"
	// RoleAdmin can view, edit, create and delete records
	RoleAdmin UserRole = "Admin"
)

// AllRoles returns the closed role enumeration in hierarchical order.
func AllRoles() []UserRole {
	return []UserRole{RoleUser, RoleEditor, RoleAdmin}
}

// ValidRole checks the role against the closed enumeration.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleUser, RoleEditor, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is an account that can authenticate against the API.
// Email and registration number are unique among active users.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID                 uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	FullName           string    `bun:"full_name,notnull" json:"full_name"`
	Email              string    `bun:"email,notnull" json:"email"`
	PasswordHash       string    `bun:"password_hash,notnull" json:"-"`
	RegistrationNumber string    `bun:"registration_number,notnull" json:"registration_number"`
	Role               UserRole  `bun:"role,notnull" json:"role"`

	Lifecycle
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) SetID(id uuid.UUID) {
	u.ID = id
}
