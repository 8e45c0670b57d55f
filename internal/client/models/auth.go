package models

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	UserType Role   `json:"userType,omitempty"`
}

// ProfilePatch carries only the fields being changed; nil fields are not sent.
type ProfilePatch struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.ProfilePicture == nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// MessageResponse is the generic {message} body used for acknowledgements
// and errors.
type MessageResponse struct {
	Message string `json:"message"`
}
