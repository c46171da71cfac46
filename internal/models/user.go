package models

import "time"

// UserProfile is the persisted user record. Usernames are bare identifiers,
// not credentials.
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
