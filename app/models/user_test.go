package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("Ada Founder", "ada@example.com", "s3cretpass")
	require.NoError(t, err)

	assert.Equal(t, ROLE_USER, u.Role)
	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.True(t, u.IsActive())
	assert.NotEqual(t, "s3cretpass", u.Password)
	assert.True(t, u.CheckPassword("s3cretpass"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "short name", username: "ab", email: "a@example.com", password: "s3cretpass"},
		{name: "bad email", username: "Ada Founder", email: "not-an-email", password: "s3cretpass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(tt.username, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestSetPassword(t *testing.T) {
	u, err := CreateUser("Ada Founder", "ada@example.com", "firstpass1")
	require.NoError(t, err)

	require.NoError(t, u.SetPassword("secondpass2"))
	assert.False(t, u.CheckPassword("firstpass1"))
	assert.True(t, u.CheckPassword("secondpass2"))
}
