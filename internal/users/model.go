package users

import "time"

// User is a minimal profile row. Identity comes from the auth token; this
// table only carries what the digests and the profile endpoint need.
type User struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
