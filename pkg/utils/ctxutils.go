package utils

import (
	"context"

	"restaurant-pos/internal/dto"
	"restaurant-pos/pkg/contextkeys"
	apperrors "restaurant-pos/pkg/errors"
)

func GetClaimsFromContext(ctx context.Context) (*dto.StaffClaims, error) {
	claims, ok := ctx.Value(contextkeys.StaffClaimsKey).(*dto.StaffClaims)
	if !ok || claims == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}
