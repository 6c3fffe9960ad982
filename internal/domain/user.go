package domain

import (
	"errors"
	"time"
)

// User represents a platform user
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Tier           Tier
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access, including resets and adjustments
	RoleAdmin Role = "admin"

	// RoleOperator can record wallet entries but cannot reset accounts
	RoleOperator Role = "operator"

	// RoleViewer can only view resources, no mutations
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
	RoleViewer:   true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanRecord checks if the role can record wallet entries
func (r Role) CanRecord() bool {
	return r == RoleAdmin || r == RoleOperator
}

// CanReset checks if the role can reset wallet balances
func (r Role) CanReset() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
