package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiry time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: expiry,
		TokenIssuer:    "teached.test",
	})
}

func TestJWTIssueAndVerify(t *testing.T) {
	service := newTestJWTService(time.Hour)

	token, err := service.Issue(42, "gopher")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "gopher", claims.Username())
	assert.Equal(t, "teached.test", claims.Issuer)
}

func TestJWTVerifyExpiredToken(t *testing.T) {
	service := newTestJWTService(-time.Minute)

	token, err := service.Issue(42, "gopher")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTVerifyTamperedToken(t *testing.T) {
	service := newTestJWTService(time.Hour)

	token, err := service.Issue(42, "gopher")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = service.Verify(tampered)
	assert.Error(t, err)
}

func TestJWTVerifyWrongSecret(t *testing.T) {
	token, err := newTestJWTService(time.Hour).Issue(42, "gopher")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:      "another-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "teached.test",
	})
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyEmptyToken(t *testing.T) {
	service := newTestJWTService(time.Hour)

	_, err := service.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("Token abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
