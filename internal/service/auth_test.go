package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock advances one second per call so consecutive tokens never
// share an issued-at timestamp.
func steppingClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, nil)

	user, tokens, err := svc.Register("Ravi", "  Ravi@Example.COM ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	logged, pair, err := svc.Login("ravi@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, pair.AccessToken)

	_, _, err = svc.Login("ravi@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := testService(newFakeStore(), nil)

	_, _, err := svc.Register("", "a@b.com", "secret123")
	assert.Error(t, err)

	_, _, err = svc.Register("Ravi", "a@b.com", "short")
	assert.Error(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, steppingClock(time.Now()))

	_, tokens, err := svc.Register("Ravi", "ravi@example.com", "secret123")
	require.NoError(t, err)

	rotated, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	// The previous refresh token was replaced and must not work again.
	_, err = svc.Refresh(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := testService(newFakeStore(), nil)

	_, err := svc.Refresh("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, nil)

	_, tokens, err := svc.Register("Ravi", "ravi@example.com", "secret123")
	require.NoError(t, err)

	// Access tokens are signed with a different secret.
	_, err = svc.Refresh(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
