package user

import "time"

// User is the administrative view of an account: identity plus the
// slugs of every assigned role.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Roles     []string   `json:"roles"`
	CreatedAt time.Time  `json:"created_at"`
}
