package services

import (
	"restaurant-pos/internal/dto"
	"restaurant-pos/pkg/constants"
	"restaurant-pos/pkg/service"

	"go.uber.org/zap"
)

type SessionServiceInterface interface {
	CreateSession(role string) (*dto.SessionResponseDTO, error)
}

// SessionService выдает токен рабочей станции под выбранную роль.
type SessionService struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewSessionService(jwtService service.JWTService, logger *zap.Logger) SessionServiceInterface {
	return &SessionService{jwtService: jwtService, logger: logger}
}

func (s *SessionService) CreateSession(role string) (*dto.SessionResponseDTO, error) {
	token, err := s.jwtService.GenerateSessionToken(constants.StaffRole(role))
	if err != nil {
		return nil, err
	}
	s.logger.Info("staff session opened", zap.String("role", role))
	return &dto.SessionResponseDTO{
		AccessToken: token,
		Role:        role,
		ExpiresIn:   int64(s.jwtService.GetSessionTTL().Seconds()),
	}, nil
}
