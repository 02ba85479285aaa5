package domain

import (
	"errors"
	"time"
)

const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAgent    = "agent"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrSessionNotFound = errors.New("session not found")

// ValidRole reports whether role is one of the enumerated roles.
func ValidRole(role string) bool {
	return role == RoleTenant || role == RoleLandlord || role == RoleAgent
}

// CanRespond reports whether the role may supply a deduction and
// documentation on a pending deposit.
func CanRespond(role string) bool {
	return role == RoleLandlord || role == RoleAgent
}

// User models an authenticated actor in the system. Records are created at
// registration and immutable thereafter.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
