// Package models defines client-side data models exchanged with the
// bus-ticketing API.
package models

import "time"

// Role is the closed set of account roles known to the backend.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAgent      Role = "agent"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// User is the identity record for the authenticated principal. It is owned
// by the session manager and replaced wholesale on login, refresh, or
// profile update; callers never mutate it in place.
type User struct {
	// ID is the server-assigned account identifier.
	ID string `json:"id"`

	// Email is the login identifier.
	Email string `json:"email"`

	// FullName is the display name shown in the UI.
	FullName string `json:"full_name"`

	// Phone is the contact number used for booking notifications.
	Phone string `json:"phone,omitempty"`

	// Role determines which dashboard and operations the account may use.
	Role Role `json:"role"`

	// IsVerified reports whether the account's email has been confirmed.
	IsVerified bool `json:"is_verified"`

	// IsActive reports whether the account is enabled server-side.
	IsActive bool `json:"is_active"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login_at,omitempty"`
}
