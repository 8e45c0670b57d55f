// Package models holds the data shapes exchanged with the marketplace API.
package models

import "time"

// Role decides which dashboard a profile is routed to.
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserProfile is always the server's view of the user; the client never
// builds one on its own.
type UserProfile struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	ProfilePicture string         `json:"profilePicture,omitempty"`
	UserType       Role           `json:"userType"`
	Notifications  []Notification `json:"notifications"`
}

// Clone returns a deep copy so snapshots handed to consumers cannot alias
// session state.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	if u.Notifications != nil {
		c.Notifications = append([]Notification(nil), u.Notifications...)
	}
	return &c
}

// UnreadNotifications counts notifications not yet marked read.
func (u *UserProfile) UnreadNotifications() int {
	if u == nil {
		return 0
	}
	n := 0
	for _, nt := range u.Notifications {
		if !nt.Read {
			n++
		}
	}
	return n
}
