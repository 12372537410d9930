package service

import (
	"testing"

	"gerisafe/database"
	"gerisafe/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countUsers(t *testing.T, email string) int64 {
	t.Helper()
	var count int64
	err := database.GetDB().Model(model.User{}).Where("email = ?", email).Count(&count).Error
	require.NoError(t, err)
	return count
}

func TestRegisterCreatesNoUserRow(t *testing.T) {
	setup(t)
	userService := UserService{}

	token, err := userService.Register("Jane Doe", "Pharmacist", "Geriatrics", "jane@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.EqualValues(t, 0, countUsers(t, "jane@example.com"))
}

func TestConfirmRegistrationCreatesUser(t *testing.T) {
	setup(t)
	userService := UserService{}

	token, err := userService.Register("Jane Doe", "Pharmacist", "Geriatrics", "jane@example.com", "supersecret")
	require.NoError(t, err)

	user, err := userService.ConfirmRegistration(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.NotEqual(t, "supersecret", user.Password)
	assert.EqualValues(t, 1, countUsers(t, "jane@example.com"))

	// following the same link twice must not create a second row
	_, err = userService.ConfirmRegistration(token)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.EqualValues(t, 1, countUsers(t, "jane@example.com"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setup(t)
	userService := UserService{}

	token, err := userService.Register("Jane Doe", "Pharmacist", "Geriatrics", "jane@example.com", "supersecret")
	require.NoError(t, err)
	_, err = userService.ConfirmRegistration(token)
	require.NoError(t, err)

	_, err = userService.Register("Other Jane", "Nurse", "Cardiology", "jane@example.com", "anotherpass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestConfirmRegistrationRejectsGarbage(t *testing.T) {
	setup(t)
	userService := UserService{}

	_, err := userService.ConfirmRegistration("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.EqualValues(t, 0, countUsers(t, "jane@example.com"))
}

func TestCheckUser(t *testing.T) {
	setup(t)
	userService := UserService{}

	token, err := userService.Register("Jane Doe", "Pharmacist", "Geriatrics", "jane@example.com", "supersecret")
	require.NoError(t, err)
	_, err = userService.ConfirmRegistration(token)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
	}{
		{"correct credentials", "jane@example.com", "supersecret", true},
		{"wrong password", "jane@example.com", "wrongpass", false},
		{"unknown email", "nobody@example.com", "supersecret", false},
		{"empty password", "jane@example.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := userService.CheckUser(tt.email, tt.password)
			if tt.found {
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			} else {
				assert.Nil(t, user)
			}
		})
	}
}
