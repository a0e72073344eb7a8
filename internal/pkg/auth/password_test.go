package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotContains(t, hash, "correct horse battery staple")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-passphrase")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret-passphrase"))
	assert.False(t, CheckPassword(hash, "wrong-passphrase"))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "s3cret-passphrase"))
}
