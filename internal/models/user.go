package models

import "time"

// User mirrors an identity-provider account. ID is the provider's
// subject identifier.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
