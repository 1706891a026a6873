package service

import (
	"testing"
	"time"

	"restaurant-pos/pkg/constants"
	apperrors "restaurant-pos/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateSessionToken(constants.RoleKitchen)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "kitchen", claims.Role)
	assert.Equal(t, time.Hour, svc.GetSessionTTL())
}

func TestGenerateRejectsUnknownRole(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	_, err := svc.GenerateSessionToken(constants.StaffRole("manager"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := &jwtService{SecretKey: "secret", SessionTTL: time.Minute, now: func() time.Time {
		return time.Now().Add(-time.Hour)
	}}
	token, err := svc.GenerateSessionToken(constants.RoleWaiter)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateSessionToken(constants.RolePickup)
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateForgedRole(t *testing.T) {
	claims := &StaffClaims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}
