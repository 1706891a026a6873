package services

import (
	"context"
	"errors"
	"net/http"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/repositories"
	apperrors "restaurant-pos/pkg/errors"
	"restaurant-pos/pkg/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	MsgRequiredFields    = "Required fields are missing"
	MsgInvalidEmail      = "Invalid email format"
	MsgPasswordTooShort  = "Password must be at least 8 characters"
	MsgPasswordsMismatch = "Passwords do not match"
	MsgPasswordTooLong   = "Password must be at most 72 bytes"
	MsgEmailRegistered   = "Email already registered"
	MsgInternalError     = "Internal server error"
	MsgMethodNotAllowed  = "Method not allowed"
)

// Сообщения валидации в порядке приоритета: показывается первое сработавшее правило.
var registrationRules = []struct {
	tag     string
	message string
}{
	{"notblank", MsgRequiredFields},
	{"email_shape", MsgInvalidEmail},
	{"min", MsgPasswordTooShort},
	{"eqfield", MsgPasswordsMismatch},
}

type RegistrationServiceInterface interface {
	// Register возвращает *apperrors.HttpError для ошибок клиента; прочие ошибки - внутренние.
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.RegisterResponseDTO, error)
}

type RegistrationService struct {
	userRepo  repositories.UserRepositoryInterface
	validator *validator.Validate
	logger    *zap.Logger
}

func NewRegistrationService(userRepo repositories.UserRepositoryInterface, v *validator.Validate, logger *zap.Logger) RegistrationServiceInterface {
	return &RegistrationService{userRepo: userRepo, validator: v, logger: logger}
}

func (s *RegistrationService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.RegisterResponseDTO, error) {
	if err := s.validate(payload); err != nil {
		return nil, err
	}

	_, err := s.userRepo.FindByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		return nil, apperrors.NewHttpError(http.StatusConflict, MsgEmailRegistered, nil, nil)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, MsgPasswordTooLong, nil, nil)
		}
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, payload.Email, hash)
	if err != nil {
		// параллельная регистрация с тем же email
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, MsgEmailRegistered, nil, nil)
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return &dto.RegisterResponseDTO{ID: user.ID, Email: user.Email}, nil
}

func (s *RegistrationService) validate(payload dto.RegisterDTO) error {
	err := s.validator.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	failed := make(map[string]bool, len(validationErrors))
	for _, fe := range validationErrors {
		failed[fe.Tag()] = true
	}
	for _, rule := range registrationRules {
		if failed[rule.tag] {
			return apperrors.NewHttpError(http.StatusBadRequest, rule.message, nil, nil)
		}
	}
	return apperrors.NewHttpError(http.StatusBadRequest, MsgRequiredFields, nil, nil)
}
