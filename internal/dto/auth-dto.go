package dto

import "github.com/google/uuid"

// RegisterDTO - тело запроса регистрации. Порядок проверок задается в сервисе.
type RegisterDTO struct {
	Email           string `json:"email" validate:"notblank,email_shape"`
	Password        string `json:"password" validate:"notblank,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"notblank,eqfield=Password"`
}

type RegisterResponseDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type RegisterErrorDTO struct {
	Error string `json:"error"`
}

type CreateSessionDTO struct {
	Role string `json:"role" validate:"required,oneof=waiter kitchen pickup"`
}

type SessionResponseDTO struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
	ExpiresIn   int64  `json:"expiresIn"`
}
