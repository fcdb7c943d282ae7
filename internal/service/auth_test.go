package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshay-menon/recipe-flash-generator/internal/testhelpers"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("Asha", "asha@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.NotEqual(t, claims.UserID.String(), "00000000-0000-0000-0000-000000000000")

	// Same email again is a conflict.
	_, err = svc.Register("Asha", "asha@example.com", "other")
	assert.ErrorIs(t, err, ErrUserExists)

	loginToken, err := svc.Login("asha@example.com", "hunter22")
	require.NoError(t, err)
	loginClaims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)
}

func TestAuthService_LoginWrongCredentials(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Asha", "asha@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login("asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	token, err := NewAuthService(db, "secret-a").Register("Asha", "asha@example.com", "hunter22")
	require.NoError(t, err)

	_, err = NewAuthService(db, "secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(testhelpers.SetupTestDB(t), "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
