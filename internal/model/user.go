// Package model defines the record types stored by the portal.
package model

// Roles a user can hold. Registration always assigns RoleStudent;
// RoleAdmin accounts are created by seeding or by another admin.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is a portal account. Records are append-only: a user is created on
// registration (or admin creation) and never updated or deleted.
//
// Password holds the plaintext credential, matching the legacy clients'
// contract (see DESIGN.md). It is tagged omitempty so projection queries
// that never select it (list-users) don't serialize an empty field.
type User struct {
	ID       string `json:"id"                 db:"id"`
	Username string `json:"username"           db:"username"` // unique across users
	Password string `json:"password,omitempty" db:"password"`
	Role     string `json:"role"               db:"role"` // "student" or "admin"
	Name     string `json:"name"               db:"name"`
	Classe   string `json:"classe"             db:"classe"` // free-text class label, may be empty
}
