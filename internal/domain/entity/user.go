package entity

import "time"

// Roles a user can hold. There is no role management surface; admins are
// promoted directly in the database.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plaintext.
// Users are created once at registration and never modified or deleted.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
