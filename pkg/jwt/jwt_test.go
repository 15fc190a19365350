package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewManager("test-secret")

	token, err := manager.GenerateToken("jnovak", "Jan Novák", "editor", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jnovak", claims.Username)
	assert.Equal(t, "Jan Novák", claims.AuthorName)
	assert.Equal(t, "editor", claims.Role)
	assert.False(t, claims.MustChangePassword)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateToken("jnovak", "Jan Novák", "admin", false)
	require.NoError(t, err)

	_, err = NewManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := NewManager("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
