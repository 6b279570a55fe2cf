package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute)
	userID := uuid.New()

	token, expiresAt, err := manager.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	got, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	// A negative TTL produces a token that is already expired.
	manager := NewTokenManager("test-secret", -time.Minute)

	token, _, err := manager.Issue(uuid.New())
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuing := NewTokenManager("secret-a", 30*time.Minute)
	verifying := NewTokenManager("secret-b", 30*time.Minute)

	token, _, err := issuing.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_MalformedToken(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, err := manager.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q should be rejected", token)
	}
}

func TestTokenManager_TamperedToken(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute)

	token, _, err := manager.Issue(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = manager.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_EmptySecret(t *testing.T) {
	manager := NewTokenManager("", 30*time.Minute)

	_, _, err := manager.Issue(uuid.New())
	assert.Error(t, err)
}
