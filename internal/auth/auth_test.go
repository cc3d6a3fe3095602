package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndVerify(t *testing.T) {
	svc := NewService("test-secret", 30*time.Minute)

	token, expiry, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, expiry)

	data, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", data.Username)
	assert.Equal(t, "admin", data.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService("test-secret", time.Minute)

	_, _, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	svc := NewService("test-secret", time.Minute)

	u, err := svc.Register("carol", "carol@example.com", "pw123", "")
	require.NoError(t, err)
	assert.Equal(t, "user", u.Role)
	assert.True(t, u.IsActive)

	_, err = svc.Register("carol", "carol@example.com", "pw123", "")
	assert.ErrorIs(t, err, ErrUserExists)

	_, _, err = svc.Login("carol", "pw123")
	assert.NoError(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Minute)

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-one", time.Minute)
	verifier := NewService("secret-two", time.Minute)

	token, _, err := issuer.Login("user", "user123")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	token, _, err := svc.Login("user", "user123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
