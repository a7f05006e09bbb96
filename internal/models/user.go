package models

// User represents a member of the expense-sharing group.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	// The calculator treats it as an opaque key.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique within the group).
	Email string `json:"email"`
}
