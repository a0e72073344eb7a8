package auth

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

func hashParts(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	return hash[:5], hash[5:]
}

func TestPwnedCheckReportsBreachCount(t *testing.T) {
	prefix, suffix := hashParts("password123")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+prefix, r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n" + suffix + ":1274\r\n011053FD0102E94D6AE2F8B83D76FAF94F6:1"))
	}))
	defer server.Close()

	client := NewPwnedClient(server.URL, time.Second)
	count, err := client.Check(context.Background(), "password123")
	require.NoError(t, err)
	assert.Equal(t, 1274, count)
}

func TestPwnedCheckUnlistedPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n011053FD0102E94D6AE2F8B83D76FAF94F6:1"))
	}))
	defer server.Close()

	client := NewPwnedClient(server.URL, time.Second)
	count, err := client.Check(context.Background(), "a-password-nobody-leaked")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPwnedCheckFailsClosedOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewPwnedClient(server.URL, time.Second)
	_, err := client.Check(context.Background(), "password123")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestPwnedCheckFailsClosedOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewPwnedClient(server.URL, 20*time.Millisecond)
	_, err := client.Check(context.Background(), "password123")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestPwnedCheckMalformedCount(t *testing.T) {
	_, suffix := hashParts("password123")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(suffix + ":not-a-number"))
	}))
	defer server.Close()

	client := NewPwnedClient(server.URL, time.Second)
	_, err := client.Check(context.Background(), "password123")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
