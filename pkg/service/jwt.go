package service

import (
	"errors"
	"time"

	"restaurant-pos/pkg/constants"
	apperrors "restaurant-pos/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// StaffClaims - токен сессии рабочей станции; пользователь не привязан, только роль.
type StaffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateSessionToken(role constants.StaffRole) (string, error)
	ValidateToken(tokenString string) (*StaffClaims, error)
	GetSessionTTL() time.Duration
}

type jwtService struct {
	SecretKey  string
	SessionTTL time.Duration
	now        func() time.Time
}

func NewJWTService(secretKey string, sessionTTL time.Duration) JWTService {
	return &jwtService{
		SecretKey:  secretKey,
		SessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (service *jwtService) GenerateSessionToken(role constants.StaffRole) (string, error) {
	if !role.IsValid() {
		return "", apperrors.ErrInvalidRole
	}
	now := service.now()
	claims := &StaffClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(service.SecretKey))
}

func (s *jwtService) GetSessionTTL() time.Duration {
	return s.SessionTTL
}

func (service *jwtService) ValidateToken(tokenString string) (*StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*StaffClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if !constants.StaffRole(claims.Role).IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	return claims, nil
}
