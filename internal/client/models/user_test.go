package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleVendor.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("owner").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestUserProfile_CloneIsDeep(t *testing.T) {
	u := &UserProfile{ID: "1", Notifications: []Notification{{ID: "n1"}}}
	c := u.Clone()

	c.Notifications[0].Read = true
	c.Name = "changed"

	assert.False(t, u.Notifications[0].Read)
	assert.Empty(t, u.Name)
	assert.Nil(t, (*UserProfile)(nil).Clone())
}

func TestUserProfile_UnreadNotifications(t *testing.T) {
	u := &UserProfile{Notifications: []Notification{{Read: true}, {}, {}}}
	assert.Equal(t, 2, u.UnreadNotifications())
	assert.Equal(t, 0, (*UserProfile)(nil).UnreadNotifications())
}

func TestUserProfile_DecodesServerPayload(t *testing.T) {
	raw := `{"id":"42","name":"Ann","email":"ann@example.com","userType":"vendor",
		"profilePicture":"https://cdn/x.png","notifications":[{"id":"n1","message":"booked","read":false}]}`

	var u UserProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &u))
	assert.Equal(t, RoleVendor, u.UserType)
	assert.Equal(t, "https://cdn/x.png", u.ProfilePicture)
	require.Len(t, u.Notifications, 1)
	assert.Equal(t, "booked", u.Notifications[0].Message)
}

func TestProfilePatch_OmitsUnsetFields(t *testing.T) {
	name := "Bob"
	b, err := json.Marshal(ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Bob"}`, string(b))
	assert.False(t, ProfilePatch{Name: &name}.IsEmpty())
	assert.True(t, ProfilePatch{}.IsEmpty())
}
