package models

import "time"

// Roles recognized by the coordination services
const (
	RoleDriver     = "driver"
	RoleDispatcher = "dispatcher"
)

// Actor identifies the authenticated caller of an operation. It is
// resolved from the session token and passed explicitly; nothing in the
// services reads identity from ambient state.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsDriver reports whether the actor holds the driver role
func (a Actor) IsDriver() bool { return a.Role == RoleDriver }

// IsDispatcher reports whether the actor holds the dispatcher role
func (a Actor) IsDispatcher() bool { return a.Role == RoleDispatcher }

// User is the read-only profile row used to decorate roster entries
type User struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Role      string    `json:"role" db:"role"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
