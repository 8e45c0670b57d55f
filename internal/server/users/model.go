package users

import "time"

// Roles a user account can have. Admins are only created by seeding.
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	ProfilePicture string
	UserType       string
	PasswordHash   []byte
	Notifications  []Notification
	CreatedAt      time.Time
}

// Profile is the public view of a User sent to clients.
type Profile struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	ProfilePicture string         `json:"profilePicture,omitempty"`
	UserType       string         `json:"userType"`
	Notifications  []Notification `json:"notifications"`
}

func (u *User) Profile() Profile {
	notifications := make([]Notification, len(u.Notifications))
	copy(notifications, u.Notifications)

	return Profile{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		UserType:       u.UserType,
		Notifications:  notifications,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	UserType string `json:"userType"`
}

// ProfileUpdate holds optional new values; nil fields are left alone.
type ProfileUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profilePicture"`
}
