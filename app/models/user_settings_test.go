package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 7}

	key, err := us.IssueAPIKey()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "pyh_"))
	assert.Equal(t, HashAPIKey(key), us.APIKeyHash)
	assert.True(t, strings.HasPrefix(key, us.APIKeyPrefix))
	assert.NotNil(t, us.APIKeyCreatedAt)
	assert.Nil(t, us.APIKeyRevokedAt)
	assert.True(t, us.HasActiveAPIKey())
}

func TestRevokeAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 7}
	_, err := us.IssueAPIKey()
	assert.NoError(t, err)

	us.RevokeAPIKey()
	assert.False(t, us.HasActiveAPIKey())
	assert.Empty(t, us.APIKeyHash)
	assert.NotNil(t, us.APIKeyRevokedAt)
}

func TestHashAPIKeyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("pyh_abc"), HashAPIKey("  pyh_abc  "))
}
